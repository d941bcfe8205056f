package paymentController_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"drivingschool/config"
	"drivingschool/models"
	"drivingschool/routers"
	"drivingschool/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPayment(t *testing.T, db *gorm.DB, booking models.Booking, user models.User, status string) models.Payment {
	t.Helper()
	payment := models.Payment{
		BookingID: booking.ID,
		UserID:    user.ID,
		Amount:    45,
		Status:    status,
		Date:      time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&payment).Error)
	return payment
}

func TestGetPaymentsScopesStudents(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	admin := testutil.CreateUser(t, db, models.RoleAdmin)
	instructor := testutil.CreateUser(t, db, models.RoleInstructor)
	student := testutil.CreateUser(t, db, models.RoleStudent, testutil.WithName("Sam Student"))
	classmate := testutil.CreateUser(t, db, models.RoleStudent)
	course := testutil.CreateCourse(t, db, instructor)
	booking := testutil.CreateBooking(t, db, course, student, instructor, time.Now(), models.BookingConfirmed)
	other := testutil.CreateBooking(t, db, course, classmate, instructor, time.Now(), models.BookingConfirmed)
	own := seedPayment(t, db, booking, student, models.PaymentPending)
	seedPayment(t, db, other, classmate, models.PaymentCompleted)

	code, env := testutil.Do(t, app, http.MethodGet, "/api/payments", testutil.Token(t, student), nil)
	require.Equal(t, http.StatusOK, code)
	var payments []models.Payment
	env.Decode(t, &payments)
	require.Len(t, payments, 1)
	assert.Equal(t, own.ID, payments[0].ID)
	require.NotNil(t, payments[0].User)
	assert.Equal(t, "Sam Student", payments[0].User.Name)
	require.NotNil(t, payments[0].Booking)
	require.NotNil(t, payments[0].Booking.Course)
	assert.Equal(t, course.Title, payments[0].Booking.Course.Title)

	code, env = testutil.Do(t, app, http.MethodGet, "/api/payments", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, code)
	env.Decode(t, &payments)
	assert.Len(t, payments, 2)

	code, _ = testutil.Do(t, app, http.MethodGet, "/api/payments", testutil.Token(t, instructor), nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestCreatePayment(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	admin := testutil.CreateUser(t, db, models.RoleAdmin)
	instructor := testutil.CreateUser(t, db, models.RoleInstructor)
	student := testutil.CreateUser(t, db, models.RoleStudent)
	course := testutil.CreateCourse(t, db, instructor)
	booking := testutil.CreateBooking(t, db, course, student, instructor, time.Now(), models.BookingConfirmed)
	token := testutil.Token(t, admin)

	code, env := testutil.Do(t, app, http.MethodPost, "/api/payments", token, map[string]interface{}{
		"booking": booking.ID,
		"user":    student.ID,
		"amount":  45.5,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var payment models.Payment
	env.Decode(t, &payment)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, 45.5, payment.Amount)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"zero amount", map[string]interface{}{"booking": booking.ID, "user": student.ID, "amount": 0}},
		{"missing booking", map[string]interface{}{"user": student.ID, "amount": 10}},
		{"unknown booking", map[string]interface{}{"booking": 9999, "user": student.ID, "amount": 10}},
		{"unknown user", map[string]interface{}{"booking": booking.ID, "user": 9999, "amount": 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := testutil.Do(t, app, http.MethodPost, "/api/payments", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
		})
	}

	code, _ = testutil.Do(t, app, http.MethodPost, "/api/payments", testutil.Token(t, student), map[string]interface{}{
		"booking": booking.ID, "user": student.ID, "amount": 10,
	})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestProcessAndRefundPayment(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	admin := testutil.CreateUser(t, db, models.RoleAdmin)
	instructor := testutil.CreateUser(t, db, models.RoleInstructor)
	student := testutil.CreateUser(t, db, models.RoleStudent)
	course := testutil.CreateCourse(t, db, instructor)
	booking := testutil.CreateBooking(t, db, course, student, instructor, time.Now(), models.BookingConfirmed)
	payment := seedPayment(t, db, booking, student, models.PaymentPending)
	token := testutil.Token(t, admin)

	code, env := testutil.Do(t, app, http.MethodPut, fmt.Sprintf("/api/payments/process/%d", payment.ID), token, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var processed models.Payment
	env.Decode(t, &processed)
	assert.Equal(t, models.PaymentCompleted, processed.Status)
	assert.True(t, processed.Date.After(payment.Date))

	code, env = testutil.Do(t, app, http.MethodPut, fmt.Sprintf("/api/payments/refund/%d", payment.ID), token, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var refunded models.Payment
	env.Decode(t, &refunded)
	assert.Equal(t, models.PaymentRefunded, refunded.Status)

	// no guard against processing twice
	code, _ = testutil.Do(t, app, http.MethodPut, fmt.Sprintf("/api/payments/process/%d", payment.ID), token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = testutil.Do(t, app, http.MethodPut, "/api/payments/refund/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Payment not found", env.Message)
}
