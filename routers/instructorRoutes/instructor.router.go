package instructorRoutes

import (
	instructorController "drivingschool/controllers/instructor"
	notificationController "drivingschool/controllers/notification"
	"drivingschool/middleware"
	"drivingschool/models"
	instructorValidator "drivingschool/validators/instructor"
	notificationValidator "drivingschool/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes registers the instructor dashboard; every route is instructor only
func SetupInstructorRoutes(api fiber.Router) {
	instructorGroup := api.Group("/instructor", middleware.Protect(models.RoleInstructor))

	instructorGroup.Get("/schedule", instructorValidator.Schedule(), instructorController.GetSchedule)
	instructorGroup.Get("/overview", instructorController.GetOverview)
	instructorGroup.Put("/lesson", instructorValidator.LessonStatus(), instructorController.UpdateLessonStatus)
	instructorGroup.Post("/report", instructorValidator.ReportIssue(), instructorController.ReportIssue)
	instructorGroup.Put("/availability", instructorValidator.Availability(), instructorController.UpdateAvailability)
	instructorGroup.Get("/notifications", notificationValidator.NotificationList(), notificationController.GetNotifications)
	instructorGroup.Get("/student/:studentId", instructorValidator.StudentID(), instructorController.GetStudentProfile)
	instructorGroup.Post("/message", instructorValidator.Message(), instructorController.SendMessage)
}
