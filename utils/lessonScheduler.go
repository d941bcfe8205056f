package utils

import (
	"fmt"
	"time"

	"drivingschool/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartLessonScheduler registers the daily lesson jobs on spec and starts the cron.
// Callers stop it with the returned cron's Stop.
func StartLessonScheduler(db *gorm.DB, spec string) (*cron.Cron, error) {
	zap.L().Info("initializing lesson scheduler", zap.String("spec", spec))

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		at := time.Now()
		if _, err := SendLessonReminders(db, at); err != nil {
			zap.L().Error("lesson reminders failed", zap.Error(err))
		}
		if _, err := MarkMissedLessons(db, at); err != nil {
			zap.L().Error("marking missed lessons failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_CRON %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}

// SendLessonReminders notifies students of scheduled or confirmed lessons on the
// day after at. Each booking is reminded once.
func SendLessonReminders(db *gorm.DB, at time.Time) (int, error) {
	from, to := DayRange(at.AddDate(0, 0, 1))

	var bookings []models.Booking
	if err := db.
		Where("status IN ? AND reminder_sent = ?", []string{models.BookingScheduled, models.BookingConfirmed}, false).
		Where("date BETWEEN ? AND ?", from, to).
		Preload("Course", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "title") }).
		Find(&bookings).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, b := range bookings {
		title := "your lesson"
		if b.Course != nil {
			title = b.Course.Title
		}

		n := models.Notification{
			RecipientID: b.StudentID,
			Type:        models.NotificationLessonReminder,
			Message:     fmt.Sprintf("Reminder: %s is booked for %s.", title, b.Date.Local().Format("Mon 02 Jan 15:04")),
		}
		if err := Notify(db, &n); err != nil {
			zap.L().Error("storing lesson reminder failed", zap.Uint("booking_id", b.ID), zap.Error(err))
			continue
		}

		if err := db.Model(&models.Booking{}).Where("id = ?", b.ID).Update("reminder_sent", true).Error; err != nil {
			zap.L().Error("flagging reminder failed", zap.Uint("booking_id", b.ID), zap.Error(err))
			continue
		}
		sent++
	}

	zap.L().Info("lesson reminders sent", zap.Int("count", sent))
	return sent, nil
}

// MarkMissedLessons moves lessons still scheduled before the day of at to missed
func MarkMissedLessons(db *gorm.DB, at time.Time) (int64, error) {
	today, _ := DayRange(at)

	result := db.Model(&models.Booking{}).
		Where("status = ? AND date < ?", models.BookingScheduled, today).
		Update("status", models.BookingMissed)
	if result.Error != nil {
		return 0, result.Error
	}

	zap.L().Info("missed lessons marked", zap.Int64("count", result.RowsAffected))
	return result.RowsAffected, nil
}
