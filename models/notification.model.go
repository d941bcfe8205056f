package models

const (
	NotificationBookingNew        = "booking_new"
	NotificationBookingUpdated    = "booking_updated"
	NotificationAdminMessage      = "admin_message"
	NotificationInstructorMessage = "instructor_message"
	NotificationLessonReminder    = "lesson_reminder"
)

type Notification struct {
	Base
	RecipientID uint   `json:"recipient_id" gorm:"index;not null"`
	SenderID    *uint  `json:"sender_id,omitempty"`
	Message     string `json:"message" gorm:"not null"`
	Type        string `json:"type" gorm:"not null"`
	Read        bool   `json:"read" gorm:"default:false"`
}
