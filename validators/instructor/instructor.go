package instructorValidator

import (
	"time"

	"drivingschool/utils"
	"drivingschool/validators"
	bookingValidator "drivingschool/validators/booking"

	"github.com/gofiber/fiber/v2"
)

type ScheduleQuery struct {
	StartDate string `query:"startDate" json:"startDate" validate:"omitempty,date"`
	EndDate   string `query:"endDate" json:"endDate" validate:"omitempty,date"`
	StudentID uint   `query:"studentId" json:"studentId"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

type LessonStatusRequest struct {
	BookingID uint                            `json:"bookingId" validate:"required"`
	Status    string                          `json:"status" validate:"required,oneof=pending confirmed cancelled scheduled completed missed"`
	Notes     *string                         `json:"notes" validate:"omitempty,max=2000"`
	Progress  *bookingValidator.ProgressInput `json:"progress"`
}

type ReportIssueRequest struct {
	BookingID uint   `json:"bookingId" validate:"required"`
	Remarks   string `json:"remarks" validate:"required,max=2000"`
	Type      string `json:"type" validate:"required,oneof=student_absent vehicle_issue behavior other"`
}

type AvailabilityRequest struct {
	Availability []validators.AvailabilityInput `json:"availability" validate:"dive"`
}

type MessageRequest struct {
	RecipientID uint   `json:"recipientId" validate:"required"`
	Message     string `json:"message" validate:"required,max=2000"`
}

// Schedule validates the schedule filters. End dates cover the whole day.
func Schedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ScheduleQuery)
		if err := c.QueryParser(reqData); err != nil {
			return validators.BadQuery(c)
		}
		errs := validators.Struct(reqData)
		if len(errs) > 0 {
			return validators.Fail(c, errs)
		}

		if reqData.StartDate != "" {
			start, _ := utils.ParseDate(reqData.StartDate)
			from, _ := utils.DayRange(start)
			reqData.From = &from
		}
		if reqData.EndDate != "" {
			end, _ := utils.ParseDate(reqData.EndDate)
			_, to := utils.DayRange(end)
			reqData.To = &to
		}
		if reqData.From != nil && reqData.To != nil && reqData.From.After(*reqData.To) {
			errs["endDate"] = "endDate must not be before startDate!"
			return validators.Fail(c, errs)
		}

		c.Locals("validatedSchedule", reqData)
		return c.Next()
	}
}

// LessonStatus validates an instructor lesson update
func LessonStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonStatusRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// ReportIssue validates an instructor issue report
func ReportIssue() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReportIssueRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		c.Locals("validatedIssue", reqData)
		return c.Next()
	}
}

// Availability validates the replacement availability list
func Availability() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AvailabilityRequest)
		ok, err := validators.Body(c, reqData, func(errs map[string]string) {
			validators.CheckAvailability(reqData.Availability, errs)
		})
		if !ok {
			return err
		}

		c.Locals("validatedAvailability", reqData)
		return c.Next()
	}
}

// Message validates an instructor message
func Message() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MessageRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		c.Locals("validatedMessage", reqData)
		return c.Next()
	}
}

// StudentID validates the :studentId route parameter
func StudentID() fiber.Handler {
	return validators.IDParam("studentId", "studentID", "Student")
}
