package authController

import (
	"errors"
	"time"

	"drivingschool/config"
	"drivingschool/database"
	"drivingschool/middleware"
	"drivingschool/models"
	"drivingschool/validators"
	authValidator "drivingschool/validators/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", reqData.Email).Count(&count).Error; err != nil {
		zap.L().Error("register: email lookup failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User already exists", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		zap.L().Error("register: hashing password failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleStudent
	}
	status := reqData.Status
	if status == "" {
		status = models.StatusActive
	}
	now := time.Now()

	newUser := models.User{
		Name:         reqData.Name,
		Email:        reqData.Email,
		Password:     string(hashedPassword),
		Role:         role,
		Status:       status,
		LastActivity: &now,
		Availability: validators.AvailabilitySlots(reqData.Availability),
		Package:      reqData.Package,
	}

	if err := db.Create(&newUser).Error; err != nil {
		zap.L().Error("register: saving user failed", zap.String("email", newUser.Email), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Role)
	if err != nil {
		zap.L().Error("register: signing token failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	zap.L().Info("user registered", zap.Uint("user_id", newUser.ID), zap.String("role", newUser.Role))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"token": token,
		"user":  newUser,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email and password are required", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid credentials", nil)
		}
		zap.L().Error("login: user lookup failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid credentials", nil)
	}

	if user.Status == models.StatusInactive {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account is inactive", nil)
	}

	now := time.Now()
	if err := db.Model(&user).Update("last_activity", now).Error; err != nil {
		zap.L().Warn("login: stamping last activity failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	if err != nil {
		zap.L().Error("login: signing token failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Profile returns the caller's own record
func Profile(c *fiber.Ctx) error {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
		}
		zap.L().Error("profile lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}
