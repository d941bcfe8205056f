package analyticsRoutes

import (
	analyticsController "drivingschool/controllers/analytics"
	"drivingschool/middleware"
	"drivingschool/models"

	"github.com/gofiber/fiber/v2"
)

func SetupAnalyticsRoutes(api fiber.Router) {
	api.Get("/analytics", middleware.Protect(models.RoleAdmin), analyticsController.GetAnalytics)
}
