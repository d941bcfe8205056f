package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"drivingschool/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// Principal is the identity embedded in every token
type Principal struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

// Claims wraps the principal under "user", next to the registered claims
type Claims struct {
	User Principal `json:"user"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a token for the user that expires after JWT_TTL
func GenerateJWT(userID uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		User: Principal{ID: userID, Role: role},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.AppConfig.JWTTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// ParseJWT verifies signature and expiry and returns the decoded claims
func ParseJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.User.ID == 0 || claims.User.Role == "" {
		return nil, errors.New("invalid token payload")
	}
	return claims, nil
}

// Protect returns a gate that authenticates the bearer token and admits only
// the listed roles. With no roles every authenticated user passes.
func Protect(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "No token provided", nil)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
		}

		claims, err := ParseJWT(strings.TrimSpace(authHeader[len("Bearer "):]))
		if err != nil {
			zap.L().Debug("token rejected", zap.Error(err), zap.String("path", c.Path()))
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
		}

		c.Locals("userId", claims.User.ID)
		c.Locals("role", claims.User.Role)

		if !roleAllowed(claims.User.Role, roles) {
			return JsonResponse(c, fiber.StatusForbidden, false,
				fmt.Sprintf("User role '%s' not authorized", claims.User.Role), nil)
		}

		return c.Next()
	}
}

// CurrentUser returns the principal Protect stored on the request
func CurrentUser(c *fiber.Ctx) (uint, string, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return 0, "", false
	}
	role, _ := c.Locals("role").(string)
	return userID, role, true
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}
