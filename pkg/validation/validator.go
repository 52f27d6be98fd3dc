package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"taskmanager-api/domain/dto"
	"taskmanager-api/pkg/errs"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// report violations under the wire field name, not the Go field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("dateonly", validDate)
	_ = validate.RegisterValidation("futuredate", futureDate)
}

// validDate accepts the wire date layouts. An empty string passes: on
// update it means "clear the due date" and normalization already dropped
// it on create.
func validDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := dto.ParseDate(value)
	return err == nil
}

// futureDate enforces dueDate >= start of the current day. The rule runs
// only at validation time; a task may drift overdue afterwards, which is
// reflected in the derived status and never re-validated.
func futureDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	date, err := dto.ParseDate(value)
	if err != nil {
		// format already rejected by dateonly
		return true
	}
	return !date.Before(StartOfDay(time.Now().UTC()))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ValidateStruct evaluates every field rule of candidate and collects all
// violations. It returns nil when the candidate is valid; it never stops
// at the first error.
func ValidateStruct(candidate any) []errs.FieldError {
	err := validate.Struct(candidate)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []errs.FieldError{{Field: "", Message: err.Error()}}
	}

	violations := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		violations = append(violations, errs.FieldError{
			Field:   fe.Field(),
			Message: violationMessage(fe),
			Value:   fe.Value(),
		})
	}
	return violations
}

// violationMessage reproduces the reference rule messages.
func violationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "title":
		switch fe.Tag() {
		case "required":
			return "Title is required"
		case "min", "max":
			return "Title must be between 1 and 200 characters"
		}
	case "description":
		if fe.Tag() == "max" {
			return "Description cannot exceed 1000 characters"
		}
	case "priority":
		if fe.Tag() == "oneof" {
			return "Priority must be one of: low, medium, high"
		}
	case "dueDate":
		switch fe.Tag() {
		case "dateonly":
			return "Due date must be a valid ISO 8601 date"
		case "futuredate":
			return "Due date must be today or in the future"
		}
	}
	return fmt.Sprintf("%s failed validation on rule %s", fe.Field(), fe.Tag())
}
