package notificationValidator

import (
	"drivingschool/validators"

	"github.com/gofiber/fiber/v2"
)

type NotificationListQuery struct {
	Unread bool `query:"unread" json:"unread"`
}

// BroadcastRequest targets either one recipient or every user of a role
type BroadcastRequest struct {
	RecipientID uint   `json:"recipientId" validate:"required_without=Role"`
	Role        string `json:"role" validate:"required_without=RecipientID,omitempty,oneof=student instructor admin"`
	Message     string `json:"message" validate:"required,max=2000"`
}

// NotificationList validates the unread filter
func NotificationList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(NotificationListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return validators.BadQuery(c)
		}

		c.Locals("validatedNotificationList", reqData)
		return c.Next()
	}
}

// Broadcast validates an admin message
func Broadcast() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BroadcastRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		c.Locals("validatedBroadcast", reqData)
		return c.Next()
	}
}

// NotificationID validates the :id route parameter
func NotificationID() fiber.Handler {
	return validators.IDParam("id", "notificationID", "Notification")
}
