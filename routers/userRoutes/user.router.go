package userRoutes

import (
	userController "drivingschool/controllers/user"
	"drivingschool/middleware"
	"drivingschool/models"
	userValidator "drivingschool/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes registers admin user management. The /users prefix is shared with
// register and login, so the role gate sits on each route rather than on the group.
func SetupUserRoutes(api fiber.Router) {
	userGroup := api.Group("/users")
	adminOnly := middleware.Protect(models.RoleAdmin)

	userGroup.Get("/", adminOnly, userValidator.UserList(), userController.GetUsers)
	userGroup.Put("/:id", adminOnly, userValidator.UserID(), userValidator.UpdateUser(), userController.UpdateUser)
	userGroup.Delete("/:id", adminOnly, userValidator.UserID(), userController.DeleteUser)
}
