package notificationController

import (
	"drivingschool/database"
	"drivingschool/middleware"
	"drivingschool/models"
	"drivingschool/utils"
	notificationValidator "drivingschool/validators/notification"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetNotifications lists the caller's notifications, newest first
func GetNotifications(c *fiber.Ctx) error {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	conds := map[string]interface{}{"recipient_id": userID}
	if reqData, ok := c.Locals("validatedNotificationList").(*notificationValidator.NotificationListQuery); ok && reqData.Unread {
		conds["read"] = false
	}

	var notifications []models.Notification
	if err := database.Database.Db.Where(conds).Order("created_at desc").Find(&notifications).Error; err != nil {
		zap.L().Error("listing notifications failed", zap.Uint("user_id", userID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}

// MarkRead flags one of the caller's notifications as read
func MarkRead(c *fiber.Ctx) error {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	notificationID := c.Locals("notificationID").(uint)

	db := database.Database.Db

	result := db.Model(&models.Notification{}).
		Where(map[string]interface{}{"id": notificationID, "recipient_id": userID}).
		Update("read", true)
	if result.Error != nil {
		zap.L().Error("marking notification read failed", zap.Uint("notification_id", notificationID), zap.Error(result.Error))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	var notification models.Notification
	if err := db.Where(map[string]interface{}{"id": notificationID, "recipient_id": userID}).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read", notification)
}

// Broadcast sends an admin message to one user or to every user of a role
func Broadcast(c *fiber.Ctx) error {
	adminID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBroadcast").(*notificationValidator.BroadcastRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	query := db.Model(&models.User{})
	if reqData.RecipientID != 0 {
		query = query.Where("id = ?", reqData.RecipientID)
	} else {
		query = query.Where("role = ?", reqData.Role)
	}

	var recipients []uint
	if err := query.Pluck("id", &recipients).Error; err != nil {
		zap.L().Error("broadcast: recipient lookup failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}
	if len(recipients) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recipient not found", nil)
	}

	sent := 0
	for _, recipientID := range recipients {
		n := models.Notification{
			RecipientID: recipientID,
			SenderID:    &adminID,
			Type:        models.NotificationAdminMessage,
			Message:     reqData.Message,
		}
		if err := utils.Notify(db, &n); err != nil {
			zap.L().Error("broadcast: storing notification failed", zap.Uint("recipient_id", recipientID), zap.Error(err))
			continue
		}
		sent++
	}

	zap.L().Info("broadcast sent", zap.Uint("sender_id", adminID), zap.Int("recipients", sent))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent", fiber.Map{"recipients": sent})
}
