package models

import "gorm.io/gorm"

func selectColumns(columns ...string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Select(columns)
	}
}

// WithInstructorName preloads a course's instructor as {id, name}
func WithInstructorName(db *gorm.DB) *gorm.DB {
	return db.Preload("Instructor", selectColumns("id", "name"))
}

// WithBookingRefs resolves the course title and both parties of a booking
func WithBookingRefs(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Course", selectColumns("id", "title")).
		Preload("Student", selectColumns("id", "name", "email")).
		Preload("Instructor", selectColumns("id", "name", "email"))
}

// WithPaymentRefs resolves the booking's course title and the paying user's name
func WithPaymentRefs(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Booking", selectColumns("id", "course_id", "date", "status")).
		Preload("Booking.Course", selectColumns("id", "title")).
		Preload("User", selectColumns("id", "name"))
}
