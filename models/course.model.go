package models

// Course is a lesson package taught by one instructor. Duration is in minutes.
type Course struct {
	Base
	Title        string  `json:"title" gorm:"not null"`
	Description  string  `json:"description"`
	Duration     int     `json:"duration" gorm:"not null"`
	Price        float64 `json:"price" gorm:"not null"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	Instructor   *User   `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
}
