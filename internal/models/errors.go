package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the service layer. The HTTP layer is the only
// place that maps codes to status codes (see StatusForError).
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// FieldError is a single field-level validation failure as rendered on the
// wire: {"msg": ..., "param": ...}.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// AppError is the typed failure returned by every entity-manager operation.
type AppError struct {
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a single unnamed validation failure.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Fields:  []FieldError{{Msg: message}},
	}
}

// NewFieldValidationError reports validation failures tied to request fields.
func NewFieldValidationError(fields ...FieldError) *AppError {
	msg := "Validation failed"
	if len(fields) > 0 {
		msg = fields[0].Msg
	}
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Fields:  fields,
	}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: resource + " not found"}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Code: CodeUpstream, Message: message, Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Server Error", Err: err}
}

// StatusForError maps the error taxonomy onto HTTP status codes. The source
// application mixed 400/404 and 401/403; this is the normalized convention.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	case CodeUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError renders err with the normalized status code. Validation
// failures render as {"errors":[{msg,param}]}; everything else as {"msg"}.
// Internal errors never leak details to the caller.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusForError(err)

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return c.Status(status).JSON(fiber.Map{"msg": "Server Error"})
	}

	if appErr.Code == CodeValidation && len(appErr.Fields) > 0 {
		return c.Status(status).JSON(fiber.Map{"errors": appErr.Fields})
	}
	if appErr.Code == CodeInternal {
		return c.Status(status).JSON(fiber.Map{"msg": "Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"msg": appErr.Message})
}
