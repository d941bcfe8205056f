package bookingValidator

import (
	"time"

	"drivingschool/models"
	"drivingschool/utils"
	"drivingschool/validators"

	"github.com/gofiber/fiber/v2"
)

type SkillInput struct {
	Skill  string `json:"skill" validate:"required,max=100"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

type ProgressInput struct {
	Observations string       `json:"observations" validate:"max=2000"`
	Skills       []SkillInput `json:"skills" validate:"omitempty,dive"`
}

// Model converts the input into the stored progress document
func (p ProgressInput) Model() models.LessonProgress {
	progress := models.LessonProgress{
		Observations: p.Observations,
		Skills:       make([]models.SkillRating, 0, len(p.Skills)),
	}
	for _, s := range p.Skills {
		progress.Skills = append(progress.Skills, models.SkillRating{Skill: s.Skill, Rating: s.Rating})
	}
	return progress
}

type IssueInput struct {
	Remarks string `json:"remarks" validate:"max=2000"`
	Type    string `json:"type" validate:"omitempty,oneof=student_absent vehicle_issue behavior other"`
}

type CreateBookingRequest struct {
	Course     uint   `json:"course" validate:"required"`
	Instructor uint   `json:"instructor" validate:"required"`
	Student    uint   `json:"student" validate:"required"`
	Date       string `json:"date" validate:"required,date"`
	Status     string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled scheduled completed missed"`
	Notes      string `json:"notes" validate:"max=2000"`

	ParsedDate time.Time `json:"-"`
}

// UpdateBookingRequest is a partial patch; nil fields are left untouched
type UpdateBookingRequest struct {
	Course     *uint          `json:"course" validate:"omitempty,gt=0"`
	Instructor *uint          `json:"instructor" validate:"omitempty,gt=0"`
	Student    *uint          `json:"student" validate:"omitempty,gt=0"`
	Date       *string        `json:"date" validate:"omitempty,date"`
	Status     *string        `json:"status" validate:"omitempty,oneof=pending confirmed cancelled scheduled completed missed"`
	Notes      *string        `json:"notes" validate:"omitempty,max=2000"`
	Progress   *ProgressInput `json:"progress"`
	Issues     *IssueInput    `json:"issues"`

	ParsedDate *time.Time `json:"-"`
}

type BookingListQuery struct {
	Status string `query:"status" json:"status" validate:"omitempty,oneof=pending confirmed cancelled scheduled completed missed"`
}

// CreateBooking validates booking creation request
func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateBookingRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		reqData.ParsedDate, _ = utils.ParseDate(reqData.Date)

		c.Locals("validatedBooking", reqData)
		return c.Next()
	}
}

// UpdateBooking validates a booking patch
func UpdateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateBookingRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		if reqData.Date != nil {
			parsed, _ := utils.ParseDate(*reqData.Date)
			reqData.ParsedDate = &parsed
		}

		c.Locals("validatedBookingUpdate", reqData)
		return c.Next()
	}
}

// BookingList validates the optional status filter
func BookingList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BookingListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return validators.BadQuery(c)
		}
		if errs := validators.Struct(reqData); len(errs) > 0 {
			return validators.Fail(c, errs)
		}

		c.Locals("validatedBookingList", reqData)
		return c.Next()
	}
}

// BookingID validates the :id route parameter
func BookingID() fiber.Handler {
	return validators.IDParam("id", "bookingID", "Booking")
}
