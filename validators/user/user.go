package userValidator

import (
	"strings"

	"drivingschool/validators"

	"github.com/gofiber/fiber/v2"
)

type UpdateUserRequest struct {
	Name         *string                         `json:"name" validate:"omitnil,min=2,max=100"`
	Email        *string                         `json:"email" validate:"omitnil,email"`
	Role         *string                         `json:"role" validate:"omitempty,oneof=student instructor admin"`
	Status       *string                         `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Availability *[]validators.AvailabilityInput `json:"availability" validate:"omitempty,dive"`
	Package      *string                         `json:"package" validate:"omitempty,max=200"`
}

type UserListQuery struct {
	Role string `query:"role" json:"role" validate:"omitempty,oneof=student instructor admin"`
}

// UpdateUser validates an admin edit of a user record
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserRequest)
		ok, err := validators.Body(c, reqData, func(errs map[string]string) {
			if reqData.Availability != nil {
				validators.CheckAvailability(*reqData.Availability, errs)
			}
		})
		if !ok {
			return err
		}

		if reqData.Email != nil {
			*reqData.Email = strings.ToLower(*reqData.Email)
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}

// UserList validates the optional role filter
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UserListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return validators.BadQuery(c)
		}
		if errs := validators.Struct(reqData); len(errs) > 0 {
			return validators.Fail(c, errs)
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}

// UserID validates the :id route parameter
func UserID() fiber.Handler {
	return validators.IDParam("id", "targetUserID", "User")
}
