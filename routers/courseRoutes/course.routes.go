package courseRoutes

import (
	controllers "drivingschool/controllers/course"
	"drivingschool/middleware"
	"drivingschool/models"
	validators "drivingschool/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the course catalogue; writes are admin only
func SetupCourseRoutes(api fiber.Router) {
	courseGroup := api.Group("/courses")
	adminOnly := middleware.Protect(models.RoleAdmin)

	courseGroup.Get("/", middleware.Protect(), controllers.GetCourses)
	courseGroup.Get("/:id", middleware.Protect(), validators.CourseID(), controllers.GetCourse)

	courseGroup.Post("/", adminOnly, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", adminOnly, validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", adminOnly, validators.CourseID(), controllers.DeleteCourse)
}
