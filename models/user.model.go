package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"

	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

var (
	AllRoles     = []string{RoleStudent, RoleInstructor, RoleAdmin}
	UserStatuses = []string{StatusActive, StatusInactive}
)

func IsValidRole(role string) bool { return contains(AllRoles, role) }

func IsValidUserStatus(status string) bool { return contains(UserStatuses, status) }

// AvailabilitySlot is one weekly window an instructor is willing to teach
type AvailabilitySlot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type User struct {
	Base
	Name         string                                `json:"name" gorm:"not null"`
	Email        string                                `json:"email,omitempty" gorm:"uniqueIndex;not null"`
	Password     string                                `json:"-" gorm:"not null"`
	Role         string                                `json:"role,omitempty" gorm:"default:'student';index"`
	Status       string                                `json:"status,omitempty" gorm:"default:'Active'"`
	LastActivity *time.Time                            `json:"last_activity,omitempty"`
	Availability datatypes.JSONSlice[AvailabilitySlot] `json:"availability,omitempty"`
	Package      string                                `json:"package,omitempty"` // students only, e.g. "10-lesson beginner package"
}
