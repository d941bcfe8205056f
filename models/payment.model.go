package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentRefunded  = "refunded"
)

// Payment status is overwritten directly by admins; it is not a ledger.
type Payment struct {
	Base
	BookingID uint      `json:"booking_id" gorm:"index;not null"`
	Booking   *Booking  `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Status    string    `json:"status" gorm:"default:'pending';index"`
	Date      time.Time `json:"date"`
}

func (p *Payment) BeforeSave(tx *gorm.DB) error {
	if !p.Date.IsZero() {
		p.Date = p.Date.UTC()
	}
	return nil
}
