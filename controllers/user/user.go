package userController

import (
	"errors"

	"drivingschool/database"
	"drivingschool/middleware"
	"drivingschool/models"
	"drivingschool/validators"
	userValidator "drivingschool/validators/user"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetUsers lists every user for the admin dashboard, optionally by role
func GetUsers(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.User{})

	if reqData, ok := c.Locals("validatedUserList").(*userValidator.UserListQuery); ok && reqData.Role != "" {
		db = db.Where("role = ?", reqData.Role)
	}

	var users []models.User
	if err := db.Order("created_at desc").Find(&users).Error; err != nil {
		zap.L().Error("listing users failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// UpdateUser applies an admin edit
func UpdateUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	reqData, ok := c.Locals("validatedUserUpdate").(*userValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
		}
		zap.L().Error("loading user failed", zap.Uint("user_id", userID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	if reqData.Email != nil && *reqData.Email != user.Email {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", *reqData.Email, user.ID).Count(&count).Error; err != nil {
			zap.L().Error("email lookup failed", zap.Error(err))
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
		}
		if count > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is already in use", nil)
		}
		user.Email = *reqData.Email
	}

	if reqData.Name != nil {
		user.Name = *reqData.Name
	}
	if reqData.Role != nil {
		user.Role = *reqData.Role
	}
	if reqData.Status != nil {
		user.Status = *reqData.Status
	}
	if reqData.Availability != nil {
		user.Availability = validators.AvailabilitySlots(*reqData.Availability)
	}
	if reqData.Package != nil {
		user.Package = *reqData.Package
	}

	if err := db.Save(&user).Error; err != nil {
		zap.L().Error("updating user failed", zap.Uint("user_id", userID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}

// DeleteUser removes a user row outright so its email can register again.
// Bookings and payments that reference it are left as they are.
func DeleteUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	result := database.Database.Db.Unscoped().Delete(&models.User{}, userID)
	if result.Error != nil {
		zap.L().Error("deleting user failed", zap.Uint("user_id", userID), zap.Error(result.Error))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted", nil)
}
