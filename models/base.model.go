package models

import (
	"time"

	"gorm.io/gorm"
)

// Base replaces gorm.Model so records serialize with snake_case keys
type Base struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// AllModels lists every table the service migrates
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Booking{},
		&Payment{},
		&Notification{},
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
