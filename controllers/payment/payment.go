package paymentController

import (
	"errors"
	"time"

	"drivingschool/database"
	"drivingschool/middleware"
	"drivingschool/models"
	paymentValidator "drivingschool/validators/payment"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetPayments lists all payments for admins and the caller's own for students
func GetPayments(c *fiber.Ctx) error {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Model(&models.Payment{})
	if role != models.RoleAdmin {
		db = db.Where("user_id = ?", userID)
	}

	var payments []models.Payment
	if err := db.Scopes(models.WithPaymentRefs).Order("date desc").Find(&payments).Error; err != nil {
		zap.L().Error("listing payments failed", zap.Uint("user_id", userID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", payments)
}

// CreatePayment records a pending payment against a booking
func CreatePayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPayment").(*paymentValidator.CreatePaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	errs := make(map[string]string)
	var count int64
	if err := db.Model(&models.Booking{}).Where("id = ?", reqData.Booking).Count(&count).Error; err != nil {
		zap.L().Error("create payment: booking lookup failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}
	if count == 0 {
		errs["booking"] = "Booking not found!"
	}
	if err := db.Model(&models.User{}).Where("id = ?", reqData.User).Count(&count).Error; err != nil {
		zap.L().Error("create payment: user lookup failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}
	if count == 0 {
		errs["user"] = "User not found!"
	}
	if len(errs) > 0 {
		return middleware.ValidationErrorResponse(c, errs)
	}

	payment := models.Payment{
		BookingID: reqData.Booking,
		UserID:    reqData.User,
		Amount:    reqData.Amount,
		Status:    models.PaymentPending,
		Date:      time.Now(),
	}

	if err := db.Create(&payment).Error; err != nil {
		zap.L().Error("create payment failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment!", nil)
	}
	middleware.PaymentEvents.WithLabelValues(models.PaymentPending).Inc()

	created, err := findPayment(db, payment.ID)
	if err != nil {
		return paymentLookupError(c, payment.ID, err)
	}

	zap.L().Info("payment created", zap.Uint("payment_id", payment.ID), zap.Float64("amount", payment.Amount))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment created successfully!", created)
}

// ProcessPayment marks a payment completed
func ProcessPayment(c *fiber.Ctx) error {
	return setPaymentStatus(c, models.PaymentCompleted, "Payment processed successfully!")
}

// RefundPayment marks a payment refunded
func RefundPayment(c *fiber.Ctx) error {
	return setPaymentStatus(c, models.PaymentRefunded, "Payment refunded successfully!")
}

// setPaymentStatus overwrites status and date whatever the current status is
func setPaymentStatus(c *fiber.Ctx, status, message string) error {
	paymentID := c.Locals("paymentID").(uint)

	db := database.Database.Db

	result := db.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(map[string]interface{}{
		"status": status,
		"date":   time.Now().UTC(),
	})
	if result.Error != nil {
		zap.L().Error("updating payment status failed", zap.Uint("payment_id", paymentID), zap.String("status", status), zap.Error(result.Error))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found", nil)
	}
	middleware.PaymentEvents.WithLabelValues(status).Inc()

	payment, err := findPayment(db, paymentID)
	if err != nil {
		return paymentLookupError(c, paymentID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, payment)
}

func findPayment(db *gorm.DB, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := db.Scopes(models.WithPaymentRefs).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func paymentLookupError(c *fiber.Ctx, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found", nil)
	}
	zap.L().Error("loading payment failed", zap.Uint("payment_id", id), zap.Error(err))
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
}
