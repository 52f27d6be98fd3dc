package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind is the client-facing error type carried in the envelope.
type Kind string

const (
	KindValidation   Kind = "ValidationError"
	KindNotFound     Kind = "NotFoundError"
	KindCast         Kind = "CastError"
	KindDuplicateKey Kind = "DuplicateKeyError"
	KindServer       Kind = "ServerError"
)

// FieldError is a single field-level validation violation.
// Value holds the offending value as it was submitted.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// Envelope is the uniform JSON body returned on any non-2xx outcome.
type Envelope struct {
	Error   string  `json:"error"`
	Details Details `json:"details"`
}

type Details struct {
	Message          string       `json:"message"`
	Type             Kind         `json:"type"`
	ValidationErrors []FieldError `json:"validationErrors,omitempty"`
	Field            string       `json:"field,omitempty"`
	AvailableRoutes  []string     `json:"availableRoutes,omitempty"`
	Stack            string       `json:"stack,omitempty"`
}

// Error is the internal error carried from handlers and services to the
// centralized shaping middleware.
type Error struct {
	Kind    Kind
	Message string // short envelope-level message
	Detail  string // details.message
	Fields  []FieldError
	Field   string // duplicate-key field, when known
	Err     error  // wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to its HTTP status code. CastError uses 400:
// the client sent the malformed identifier.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindCast, KindDuplicateKey:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// Validation builds a ValidationError from one or more field violations.
func Validation(fields []FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Validation failed",
		Detail:  "Please check the provided data and try again",
		Fields:  fields,
	}
}

// NotFound reports a well-formed identifier with no matching record.
func NotFound(resource, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Detail:  fmt.Sprintf("No %s found with ID %s", resource, id),
	}
}

// InvalidID reports a malformed identifier, distinct from not-found.
func InvalidID(value string) *Error {
	return &Error{
		Kind:    KindCast,
		Message: "Invalid ID format",
		Detail:  fmt.Sprintf("Invalid ID format: %s", value),
	}
}

// Duplicate reports a persistence-level uniqueness violation.
func Duplicate(field string) *Error {
	return &Error{
		Kind:    KindDuplicateKey,
		Message: "Duplicate field value",
		Detail:  "A resource with this value already exists",
		Field:   field,
	}
}

// Internal wraps an uncategorized failure.
func Internal(err error) *Error {
	detail := "Server Error"
	if err != nil {
		detail = err.Error()
	}
	return &Error{
		Kind:    KindServer,
		Message: "Internal server error",
		Detail:  detail,
		Err:     err,
	}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == kind
	}
	return false
}
