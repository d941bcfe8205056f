package authValidator

import (
	"strings"

	"drivingschool/validators"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Name         string                         `json:"name" validate:"required,min=2,max=100"`
	Email        string                         `json:"email" validate:"required,email"`
	Password     string                         `json:"password" validate:"required,min=6" trim:"-"`
	Role         string                         `json:"role" validate:"omitempty,oneof=student instructor admin"`
	Status       string                         `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Availability []validators.AvailabilityInput `json:"availability" validate:"omitempty,dive"`
	Package      string                         `json:"package" validate:"max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required" trim:"-"`
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		ok, err := validators.Body(c, reqData, func(errs map[string]string) {
			validators.CheckAvailability(reqData.Availability, errs)
		})
		if !ok {
			return err
		}

		reqData.Email = strings.ToLower(reqData.Email)

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		reqData.Email = strings.ToLower(reqData.Email)

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
