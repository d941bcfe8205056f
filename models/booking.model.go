package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingScheduled = "scheduled"
	BookingCompleted = "completed"
	BookingMissed    = "missed"
)

const (
	IssueStudentAbsent = "student_absent"
	IssueVehicle       = "vehicle_issue"
	IssueBehavior      = "behavior"
	IssueOther         = "other"
)

var (
	BookingStatuses = []string{BookingPending, BookingConfirmed, BookingCancelled, BookingScheduled, BookingCompleted, BookingMissed}
	IssueTypes      = []string{IssueStudentAbsent, IssueVehicle, IssueBehavior, IssueOther}
)

// IsValidBookingStatus only checks membership. Any status may move to any other.
func IsValidBookingStatus(status string) bool { return contains(BookingStatuses, status) }

func IsValidIssueType(t string) bool { return contains(IssueTypes, t) }

type SkillRating struct {
	Skill  string `json:"skill"`
	Rating int    `json:"rating"`
}

type LessonProgress struct {
	Observations string        `json:"observations"`
	Skills       []SkillRating `json:"skills"`
}

type LessonIssue struct {
	Remarks string `json:"remarks"`
	Type    string `json:"type"`
}

type Booking struct {
	Base
	CourseID     uint                               `json:"course_id" gorm:"index;not null"`
	Course       *Course                            `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	StudentID    uint                               `json:"student_id" gorm:"index;not null"`
	Student      *User                              `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	InstructorID uint                               `json:"instructor_id" gorm:"index;not null"`
	Instructor   *User                              `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Date         time.Time                          `json:"date" gorm:"index;not null"`
	Status       string                             `json:"status" gorm:"default:'pending';index"`
	Notes        string                             `json:"notes"`
	Progress     datatypes.JSONType[LessonProgress] `json:"progress"`
	Issues       LessonIssue                        `json:"issues" gorm:"embedded;embeddedPrefix:issue_"`
	ReminderSent bool                               `json:"-" gorm:"default:false"`
}

// IsParty reports whether the user is the booking's student or instructor
func (b *Booking) IsParty(userID uint) bool {
	return b.StudentID == userID || b.InstructorID == userID
}

// BeforeSave keeps stored dates in UTC so range filters compare consistently
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	if !b.Date.IsZero() {
		b.Date = b.Date.UTC()
	}
	return nil
}
