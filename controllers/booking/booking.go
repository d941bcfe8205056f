package bookingController

import (
	"errors"
	"fmt"

	"drivingschool/database"
	"drivingschool/middleware"
	"drivingschool/models"
	"drivingschool/utils"
	bookingValidator "drivingschool/validators/booking"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetBookings lists bookings visible to the caller: students and instructors
// see only their own, admins see everything
func GetBookings(c *fiber.Ctx) error {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Model(&models.Booking{})
	switch role {
	case models.RoleStudent:
		db = db.Where("student_id = ?", userID)
	case models.RoleInstructor:
		db = db.Where("instructor_id = ?", userID)
	}

	if reqData, ok := c.Locals("validatedBookingList").(*bookingValidator.BookingListQuery); ok && reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}

	var bookings []models.Booking
	if err := db.Scopes(models.WithBookingRefs).Order("date desc").Find(&bookings).Error; err != nil {
		zap.L().Error("listing bookings failed", zap.Uint("user_id", userID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bookings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bookings fetched successfully!", bookings)
}

func CreateBooking(c *fiber.Ctx) error {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBooking").(*bookingValidator.CreateBookingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if role == models.RoleStudent && reqData.Student != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Students can only book lessons for themselves", nil)
	}

	db := database.Database.Db

	errs, err := checkReferences(db, &reqData.Course, &reqData.Instructor, &reqData.Student)
	if err != nil {
		zap.L().Error("create booking: reference lookup failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}
	if len(errs) > 0 {
		return middleware.ValidationErrorResponse(c, errs)
	}

	status := reqData.Status
	if status == "" {
		status = models.BookingPending
	}

	booking := models.Booking{
		CourseID:     reqData.Course,
		StudentID:    reqData.Student,
		InstructorID: reqData.Instructor,
		Date:         reqData.ParsedDate,
		Status:       status,
		Notes:        reqData.Notes,
	}

	if err := db.Create(&booking).Error; err != nil {
		zap.L().Error("create booking failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create booking!", nil)
	}
	middleware.BookingEvents.WithLabelValues("created").Inc()

	created, err := findBooking(db, booking.ID)
	if err != nil {
		return bookingLookupError(c, booking.ID, err)
	}

	notifyParty(db, userID, booking.InstructorID, models.NotificationBookingNew,
		fmt.Sprintf("New booking for %s on %s.", courseTitle(created), created.Date.Local().Format("Mon 02 Jan 15:04")))

	zap.L().Info("booking created", zap.Uint("booking_id", booking.ID), zap.Uint("created_by", userID))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Booking created successfully!", created)
}

// UpdateBooking applies a partial patch. Status may move to any valid status.
func UpdateBooking(c *fiber.Ctx) error {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	bookingID := c.Locals("bookingID").(uint)

	reqData, ok := c.Locals("validatedBookingUpdate").(*bookingValidator.UpdateBookingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	booking, err := loadVisibleBooking(db, bookingID, userID, role)
	if err != nil {
		return bookingLookupError(c, bookingID, err)
	}

	if role != models.RoleAdmin {
		if (reqData.Student != nil && *reqData.Student != booking.StudentID) ||
			(reqData.Instructor != nil && *reqData.Instructor != booking.InstructorID) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins can reassign a booking", nil)
		}
	}

	errs, err := checkReferences(db, changed(reqData.Course, booking.CourseID), changed(reqData.Instructor, booking.InstructorID), changed(reqData.Student, booking.StudentID))
	if err != nil {
		zap.L().Error("update booking: reference lookup failed", zap.Uint("booking_id", bookingID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
	}
	if len(errs) > 0 {
		return middleware.ValidationErrorResponse(c, errs)
	}

	applyPatch(booking, reqData)

	if err := db.Omit(clause.Associations).Save(booking).Error; err != nil {
		zap.L().Error("update booking failed", zap.Uint("booking_id", bookingID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update booking!", nil)
	}
	middleware.BookingEvents.WithLabelValues("updated").Inc()

	updated, err := findBooking(db, bookingID)
	if err != nil {
		return bookingLookupError(c, bookingID, err)
	}

	message := fmt.Sprintf("Your booking for %s on %s was updated (status: %s).",
		courseTitle(updated), updated.Date.Local().Format("Mon 02 Jan 15:04"), updated.Status)
	for _, recipient := range otherParties(updated, userID) {
		notifyParty(db, userID, recipient, models.NotificationBookingUpdated, message)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking updated successfully!", updated)
}

// CancelBooking sets the status to cancelled under the same scoping as UpdateBooking
func CancelBooking(c *fiber.Ctx) error {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	bookingID := c.Locals("bookingID").(uint)

	db := database.Database.Db

	booking, err := loadVisibleBooking(db, bookingID, userID, role)
	if err != nil {
		return bookingLookupError(c, bookingID, err)
	}

	if err := db.Model(booking).Update("status", models.BookingCancelled).Error; err != nil {
		zap.L().Error("cancel booking failed", zap.Uint("booking_id", bookingID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel booking!", nil)
	}
	middleware.BookingEvents.WithLabelValues("cancelled").Inc()

	cancelled, err := findBooking(db, bookingID)
	if err != nil {
		return bookingLookupError(c, bookingID, err)
	}

	message := fmt.Sprintf("Your booking for %s on %s was cancelled.",
		courseTitle(cancelled), cancelled.Date.Local().Format("Mon 02 Jan 15:04"))
	for _, recipient := range otherParties(cancelled, userID) {
		notifyParty(db, userID, recipient, models.NotificationBookingUpdated, message)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking cancelled", cancelled)
}

func DeleteBooking(c *fiber.Ctx) error {
	bookingID := c.Locals("bookingID").(uint)

	result := database.Database.Db.Delete(&models.Booking{}, bookingID)
	if result.Error != nil {
		zap.L().Error("delete booking failed", zap.Uint("booking_id", bookingID), zap.Error(result.Error))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete booking!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Booking not found", nil)
	}
	middleware.BookingEvents.WithLabelValues("deleted").Inc()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking deleted", nil)
}

func findBooking(db *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := db.Scopes(models.WithBookingRefs).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// loadVisibleBooking hides bookings the caller is not a party to behind a not-found
func loadVisibleBooking(db *gorm.DB, id, userID uint, role string) (*models.Booking, error) {
	var booking models.Booking
	if err := db.First(&booking, id).Error; err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && !booking.IsParty(userID) {
		return nil, gorm.ErrRecordNotFound
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

func changed(next *uint, current uint) *uint {
	if next == nil || *next == current {
		return nil
	}
	return next
}

// checkReferences verifies the non-nil ids point at an existing course and at users
// holding the expected role
func checkReferences(db *gorm.DB, course, instructor, student *uint) (map[string]string, error) {
	errs := make(map[string]string)

	if course != nil {
		var count int64
		if err := db.Model(&models.Course{}).Where("id = ?", *course).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			errs["course"] = "Course not found!"
		}
	}

	users := []struct {
		key  string
		id   *uint
		role string
	}{
		{"instructor", instructor, models.RoleInstructor},
		{"student", student, models.RoleStudent},
	}
	for _, u := range users {
		if u.id == nil {
			continue
		}
		var count int64
		if err := db.Model(&models.User{}).Where("id = ? AND role = ?", *u.id, u.role).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			errs[u.key] = fmt.Sprintf("%s not found!", u.role)
		}
	}

	return errs, nil
}

func applyPatch(booking *models.Booking, reqData *bookingValidator.UpdateBookingRequest) {
	if reqData.Course != nil {
		booking.CourseID = *reqData.Course
	}
	if reqData.Instructor != nil {
		booking.InstructorID = *reqData.Instructor
	}
	if reqData.Student != nil {
		booking.StudentID = *reqData.Student
	}
	if reqData.ParsedDate != nil {
		booking.Date = *reqData.ParsedDate
	}
	if reqData.Status != nil {
		booking.Status = *reqData.Status
	}
	if reqData.Notes != nil {
		booking.Notes = *reqData.Notes
	}
	if reqData.Progress != nil {
		booking.Progress = datatypes.NewJSONType(reqData.Progress.Model())
	}
	if reqData.Issues != nil {
		booking.Issues = models.LessonIssue{Remarks: reqData.Issues.Remarks, Type: reqData.Issues.Type}
	}
}

// otherParties returns the booking's parties other than the actor
func otherParties(b *models.Booking, actor uint) []uint {
	var ids []uint
	for _, id := range []uint{b.StudentID, b.InstructorID} {
		if id != 0 && id != actor {
			ids = append(ids, id)
		}
	}
	return ids
}

func notifyParty(db *gorm.DB, sender, recipient uint, kind, message string) {
	if recipient == 0 || recipient == sender {
		return
	}
	n := models.Notification{
		RecipientID: recipient,
		SenderID:    &sender,
		Type:        kind,
		Message:     message,
	}
	if err := utils.Notify(db, &n); err != nil {
		zap.L().Warn("booking notification failed", zap.Uint("recipient_id", recipient), zap.String("type", kind), zap.Error(err))
	}
}

func courseTitle(b *models.Booking) string {
	if b.Course != nil && b.Course.Title != "" {
		return b.Course.Title
	}
	return "your lesson"
}
