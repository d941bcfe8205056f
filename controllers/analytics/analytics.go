package analyticsController

import (
	"time"

	"drivingschool/database"
	"drivingschool/middleware"
	"drivingschool/models"
	"drivingschool/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Analytics struct {
	TotalStudents     int64  `json:"total_students"`
	TotalInstructors  int64  `json:"total_instructors"`
	ActiveLessons     int64  `json:"active_lessons"`
	TotalBookings     int64  `json:"total_bookings"`
	CompletedBookings int64  `json:"completed_bookings"`
	CompletionRate    string `json:"completion_rate"`
}

// Collect computes the dashboard counters as of at
func Collect(db *gorm.DB, at time.Time) (*Analytics, error) {
	var a Analytics

	counts := []struct {
		dst   *int64
		model interface{}
		query string
		args  []interface{}
	}{
		{&a.TotalStudents, &models.User{}, "role = ?", []interface{}{models.RoleStudent}},
		{&a.TotalInstructors, &models.User{}, "role = ?", []interface{}{models.RoleInstructor}},
		{&a.ActiveLessons, &models.Booking{}, "status = ? AND date >= ?", []interface{}{models.BookingScheduled, at.UTC()}},
		{&a.TotalBookings, &models.Booking{}, "1 = 1", nil},
		{&a.CompletedBookings, &models.Booking{}, "status = ?", []interface{}{models.BookingCompleted}},
	}
	for _, q := range counts {
		if err := db.Model(q.model).Where(q.query, q.args...).Count(q.dst).Error; err != nil {
			return nil, err
		}
	}

	a.CompletionRate = utils.CompletionRate(a.CompletedBookings, a.TotalBookings)
	return &a, nil
}

// GetAnalytics returns the admin dashboard counters, computed per request
func GetAnalytics(c *fiber.Ctx) error {
	analytics, err := Collect(database.Database.Db, time.Now())
	if err != nil {
		zap.L().Error("computing analytics failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analytics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", analytics)
}
