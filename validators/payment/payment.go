package paymentValidator

import (
	"drivingschool/validators"

	"github.com/gofiber/fiber/v2"
)

type CreatePaymentRequest struct {
	Booking uint    `json:"booking" validate:"required"`
	User    uint    `json:"user" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
}

// CreatePayment validates a new pending payment
func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreatePaymentRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

// PaymentID validates the :id route parameter
func PaymentID() fiber.Handler {
	return validators.IDParam("id", "paymentID", "Payment")
}
