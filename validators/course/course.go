package courseValidator

import (
	"drivingschool/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=150"`
	Description string  `json:"description" validate:"max=2000"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Instructor  uint    `json:"instructor" validate:"required"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title" validate:"omitnil,min=3,max=150"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Duration    *int     `json:"duration" validate:"omitempty,gt=0"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Instructor  *uint    `json:"instructor" validate:"omitempty,gt=0"`
}

// CreateCourse validates admin course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates admin course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if ok, err := validators.Body(c, reqData, nil); !ok {
			return err
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return validators.IDParam("id", "courseID", "Course")
}
