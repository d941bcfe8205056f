package paymentRoutes

import (
	paymentController "drivingschool/controllers/payment"
	"drivingschool/middleware"
	"drivingschool/models"
	paymentValidator "drivingschool/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(api fiber.Router) {
	paymentGroup := api.Group("/payments")
	adminOnly := middleware.Protect(models.RoleAdmin)

	paymentGroup.Get("/", middleware.Protect(models.RoleAdmin, models.RoleStudent), paymentController.GetPayments)
	paymentGroup.Post("/", adminOnly, paymentValidator.CreatePayment(), paymentController.CreatePayment)
	paymentGroup.Put("/process/:id", adminOnly, paymentValidator.PaymentID(), paymentController.ProcessPayment)
	paymentGroup.Put("/refund/:id", adminOnly, paymentValidator.PaymentID(), paymentController.RefundPayment)
}
