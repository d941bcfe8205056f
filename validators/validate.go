package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"drivingschool/middleware"
	"drivingschool/models"
	"drivingschool/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// Struct validates s and returns field errors keyed by json path, empty when valid
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["body"] = err.Error()
		return errs
	}

	for _, fe := range fieldErrs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		errs[key] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", field)
	case "email":
		return "Invalid email!"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long!", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s!", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s!", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s!", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "clock":
		return fmt.Sprintf("%s must be a time in HH:MM format!", field)
	case "date":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD or RFC3339)!", field)
	default:
		return fmt.Sprintf("%s is invalid!", field)
	}
}

// Body parses the JSON body into req, trims its strings, validates it, and answers 400 on failure.
// extra runs after tag validation for checks tags cannot express.
func Body(c *fiber.Ctx, req interface{}, extra func(errs map[string]string)) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	trimStrings(reflect.ValueOf(req))
	errs := Struct(req)
	if extra != nil {
		extra(errs)
	}
	if len(errs) > 0 {
		return false, middleware.ValidationErrorResponse(c, errs)
	}
	return true, nil
}

// trimStrings trims every exported string reachable from v. Fields tagged trim:"-" are kept as sent.
func trimStrings(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if !v.IsNil() {
			trimStrings(v.Elem())
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || f.Tag.Get("trim") == "-" {
				continue
			}
			trimStrings(v.Field(i))
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			trimStrings(v.Index(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(strings.TrimSpace(v.String()))
		}
	}
}

// IDParam validates the :param route segment as a positive id and stores it in c.Locals(localKey)
func IDParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" ID is required!", nil)
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
		}

		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

// AvailabilityInput is one weekly window submitted by an instructor or admin
type AvailabilityInput struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

var weekdays = map[string]string{
	"monday": "Monday", "tuesday": "Tuesday", "wednesday": "Wednesday", "thursday": "Thursday",
	"friday": "Friday", "saturday": "Saturday", "sunday": "Sunday",
}

// CheckAvailability normalizes day names and requires start before end
func CheckAvailability(slots []AvailabilityInput, errs map[string]string) {
	for i := range slots {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(slots[i].Day))]
		if !ok {
			errs[fmt.Sprintf("availability[%d].day", i)] = "day must be a weekday name!"
			continue
		}
		slots[i].Day = day

		start, errStart := utils.ParseClock(slots[i].StartTime)
		end, errEnd := utils.ParseClock(slots[i].EndTime)
		if errStart == nil && errEnd == nil && start >= end {
			errs[fmt.Sprintf("availability[%d].end_time", i)] = "end_time must be after start_time!"
		}
	}
}

func BadQuery(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
}

func Fail(c *fiber.Ctx, errs map[string]string) error {
	return middleware.ValidationErrorResponse(c, errs)
}

// AvailabilitySlots converts validated input into the stored representation
func AvailabilitySlots(in []AvailabilityInput) datatypes.JSONSlice[models.AvailabilitySlot] {
	slots := make(datatypes.JSONSlice[models.AvailabilitySlot], 0, len(in))
	for _, s := range in {
		slots = append(slots, models.AvailabilitySlot{Day: s.Day, StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return slots
}
