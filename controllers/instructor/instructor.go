package instructorController

import (
	"errors"
	"fmt"
	"time"

	"drivingschool/database"
	"drivingschool/middleware"
	"drivingschool/models"
	"drivingschool/utils"
	"drivingschool/validators"
	instructorValidator "drivingschool/validators/instructor"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSchedule lists the caller's lessons, optionally within a date window and for one student
func GetSchedule(c *fiber.Ctx) error {
	instructorID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Model(&models.Booking{}).Where("instructor_id = ?", instructorID)

	if reqData, ok := c.Locals("validatedSchedule").(*instructorValidator.ScheduleQuery); ok {
		if reqData.From != nil {
			db = db.Where("date >= ?", *reqData.From)
		}
		if reqData.To != nil {
			db = db.Where("date <= ?", *reqData.To)
		}
		if reqData.StudentID != 0 {
			db = db.Where("student_id = ?", reqData.StudentID)
		}
	}

	var bookings []models.Booking
	if err := db.Scopes(models.WithBookingRefs).Order("date asc").Find(&bookings).Error; err != nil {
		zap.L().Error("loading schedule failed", zap.Uint("instructor_id", instructorID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch schedule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule fetched successfully!", bookings)
}

type Overview struct {
	UpcomingLessons     int64 `json:"upcoming_lessons"`
	CompletedLessons    int64 `json:"completed_lessons"`
	TotalStudents       int64 `json:"total_students"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

// GetOverview summarizes the caller's dashboard
func GetOverview(c *fiber.Ctx) error {
	instructorID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	overview, err := collectOverview(database.Database.Db, instructorID, time.Now())
	if err != nil {
		zap.L().Error("loading overview failed", zap.Uint("instructor_id", instructorID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch overview!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Overview fetched successfully!", overview)
}

func collectOverview(db *gorm.DB, instructorID uint, at time.Time) (*Overview, error) {
	var o Overview

	lessons := func() *gorm.DB {
		return db.Model(&models.Booking{}).Where("instructor_id = ?", instructorID)
	}

	if err := lessons().
		Where("status IN ? AND date >= ?", []string{models.BookingScheduled, models.BookingConfirmed}, at.UTC()).
		Count(&o.UpcomingLessons).Error; err != nil {
		return nil, err
	}
	if err := lessons().Where("status = ?", models.BookingCompleted).Count(&o.CompletedLessons).Error; err != nil {
		return nil, err
	}
	if err := lessons().Distinct("student_id").Count(&o.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Notification{}).
		Where(map[string]interface{}{"recipient_id": instructorID, "read": false}).
		Count(&o.UnreadNotifications).Error; err != nil {
		return nil, err
	}

	return &o, nil
}

// UpdateLessonStatus sets status, notes and progress on one of the caller's lessons
func UpdateLessonStatus(c *fiber.Ctx) error {
	instructorID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*instructorValidator.LessonStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	booking, err := ownedBooking(db, reqData.BookingID, instructorID)
	if err != nil {
		return bookingLookupError(c, reqData.BookingID, err)
	}

	booking.Status = reqData.Status
	if reqData.Notes != nil {
		booking.Notes = *reqData.Notes
	}
	if reqData.Progress != nil {
		booking.Progress = datatypes.NewJSONType(reqData.Progress.Model())
	}

	if err := db.Omit(clause.Associations).Save(booking).Error; err != nil {
		zap.L().Error("updating lesson failed", zap.Uint("booking_id", booking.ID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}
	middleware.BookingEvents.WithLabelValues("updated").Inc()

	updated, err := reloadBooking(db, booking.ID)
	if err != nil {
		return bookingLookupError(c, booking.ID, err)
	}

	n := models.Notification{
		RecipientID: updated.StudentID,
		SenderID:    &instructorID,
		Type:        models.NotificationBookingUpdated,
		Message:     fmt.Sprintf("Your lesson on %s is now %s.", updated.Date.Local().Format("Mon 02 Jan 15:04"), updated.Status),
	}
	if err := utils.Notify(db, &n); err != nil {
		zap.L().Warn("lesson notification failed", zap.Uint("booking_id", updated.ID), zap.Error(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", updated)
}

// ReportIssue records an issue on one of the caller's lessons, replacing any earlier report
func ReportIssue(c *fiber.Ctx) error {
	instructorID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedIssue").(*instructorValidator.ReportIssueRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	booking, err := ownedBooking(db, reqData.BookingID, instructorID)
	if err != nil {
		return bookingLookupError(c, reqData.BookingID, err)
	}

	booking.Issues = models.LessonIssue{Remarks: reqData.Remarks, Type: reqData.Type}

	if err := db.Omit(clause.Associations).Save(booking).Error; err != nil {
		zap.L().Error("reporting issue failed", zap.Uint("booking_id", booking.ID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to report issue!", nil)
	}

	updated, err := reloadBooking(db, booking.ID)
	if err != nil {
		return bookingLookupError(c, booking.ID, err)
	}

	zap.L().Info("lesson issue reported", zap.Uint("booking_id", booking.ID), zap.String("type", reqData.Type))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Issue reported successfully!", updated)
}

// UpdateAvailability replaces the caller's weekly availability
func UpdateAvailability(c *fiber.Ctx) error {
	instructorID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAvailability").(*instructorValidator.AvailabilityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, instructorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
		}
		zap.L().Error("loading instructor failed", zap.Uint("instructor_id", instructorID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	user.Availability = validators.AvailabilitySlots(reqData.Availability)
	if err := db.Model(&user).Update("availability", user.Availability).Error; err != nil {
		zap.L().Error("updating availability failed", zap.Uint("instructor_id", instructorID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update availability!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Availability updated successfully!", user)
}

type StudentSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Package string `json:"package"`
}

type LessonRecord struct {
	Course   *string               `json:"course"`
	Status   string                `json:"status"`
	Date     time.Time             `json:"date"`
	Progress models.LessonProgress `json:"progress"`
}

type StudentProfile struct {
	Student           StudentSummary `json:"student"`
	Progress          []LessonRecord `json:"progress"`
	SessionsRemaining int            `json:"sessions_remaining"`
}

// GetStudentProfile returns a student's lesson history. Any instructor may view any student.
func GetStudentProfile(c *fiber.Ctx) error {
	studentID := c.Locals("studentID").(uint)

	db := database.Database.Db

	var student models.User
	if err := db.Select("id", "name", "email", "package", "role").
		Where("role = ?", models.RoleStudent).
		First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found", nil)
		}
		zap.L().Error("loading student failed", zap.Uint("student_id", studentID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	var bookings []models.Booking
	if err := db.Where("student_id = ?", studentID).
		Preload("Course", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "title") }).
		Order("date asc").
		Find(&bookings).Error; err != nil {
		zap.L().Error("loading student lessons failed", zap.Uint("student_id", studentID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}

	profile := StudentProfile{
		Student: StudentSummary{
			ID:      student.ID,
			Name:    student.Name,
			Email:   student.Email,
			Package: student.Package,
		},
		Progress: make([]LessonRecord, 0, len(bookings)),
	}
	for _, b := range bookings {
		record := LessonRecord{
			Status:   b.Status,
			Date:     b.Date,
			Progress: b.Progress.Data(),
		}
		if b.Course != nil {
			title := b.Course.Title
			record.Course = &title
		}
		profile.Progress = append(profile.Progress, record)

		if b.Status == models.BookingScheduled {
			profile.SessionsRemaining++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student profile fetched successfully!", profile)
}

// SendMessage stores an instructor message for an existing user
func SendMessage(c *fiber.Ctx) error {
	instructorID, _, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedMessage").(*instructorValidator.MessageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", reqData.RecipientID).Count(&count).Error; err != nil {
		zap.L().Error("recipient lookup failed", zap.Uint("recipient_id", reqData.RecipientID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}
	if count == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recipient not found", nil)
	}

	n := models.Notification{
		RecipientID: reqData.RecipientID,
		SenderID:    &instructorID,
		Type:        models.NotificationInstructorMessage,
		Message:     reqData.Message,
	}
	if err := utils.Notify(db, &n); err != nil {
		zap.L().Error("storing message failed", zap.Uint("recipient_id", reqData.RecipientID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent", n)
}

func ownedBooking(db *gorm.DB, bookingID, instructorID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := db.Where("id = ? AND instructor_id = ?", bookingID, instructorID).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func reloadBooking(db *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := db.Scopes(models.WithBookingRefs).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func bookingLookupError(c *fiber.Ctx, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Booking not found", nil)
	}
	zap.L().Error("loading booking failed", zap.Uint("booking_id", id), zap.Error(err))
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
}
