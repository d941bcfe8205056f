package authRoutes

import (
	authControllers "drivingschool/controllers/auth"
	"drivingschool/middleware"
	authValidators "drivingschool/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router) {
	authGroup := api.Group("/users")

	authGroup.Post("/register", middleware.LoginRateLimiter(), authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", middleware.LoginRateLimiter(), authValidators.Login(), authControllers.Login)
	authGroup.Get("/profile", middleware.Protect(), authControllers.Profile)
}
