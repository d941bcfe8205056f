package notificationRoutes

import (
	notificationController "drivingschool/controllers/notification"
	"drivingschool/middleware"
	"drivingschool/models"
	notificationValidator "drivingschool/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(api fiber.Router) {
	notificationGroup := api.Group("/notifications", middleware.Protect())

	notificationGroup.Get("/", notificationValidator.NotificationList(), notificationController.GetNotifications)
	notificationGroup.Put("/:id/read", notificationValidator.NotificationID(), notificationController.MarkRead)
	notificationGroup.Post("/broadcast", middleware.Protect(models.RoleAdmin), notificationValidator.Broadcast(), notificationController.Broadcast)
}
