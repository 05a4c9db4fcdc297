// Package apperr defines the application error taxonomy and the JSON error responder.
package apperr

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Code identifies a class of application failure.
type Code string

const (
	CodeValidation         Code = "VALIDATION_FAILED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeInternal           Code = "INTERNAL"
)

// Error is a classified application error. Fields carries the per-field
// validation messages when Code is CodeValidation.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error code to its HTTP status.
func (e *Error) Status() int {
	switch e.Code {
	case CodeValidation, CodeConflict:
		return fiber.StatusBadRequest
	case CodeInvalidCredentials, CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// Validation returns a field-level validation failure.
func Validation(fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

// ValidationMsg returns a validation failure carried as a single message.
func ValidationMsg(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// InvalidCredentials returns the generic login failure. The message never
// reveals whether the username exists.
func InvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: "Invalid username or password"}
}

// Unauthorized returns a missing/invalid bearer credential failure.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// NotFound returns a missing resource failure.
func NotFound(resource string, id any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s with ID %v not found", resource, id)}
}

// Conflict returns a duplicate resource failure.
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// Internal wraps an unexpected failure. The underlying error is logged
// server-side and never serialized to clients.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// Respond writes err to the client using the wire shape {"errors": <string|mapping>}.
// Unclassified errors are treated as internal failures.
func Respond(c *fiber.Ctx, err error) error {
	appErr, ok := err.(*Error)
	if !ok {
		appErr = Internal(err)
	}

	if appErr.Code == CodeInternal {
		slog.Error("internal error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", appErr.Error()),
		)
	}

	if appErr.Fields != nil {
		return c.Status(appErr.Status()).JSON(fiber.Map{"errors": appErr.Fields})
	}
	return c.Status(appErr.Status()).JSON(fiber.Map{"errors": appErr.Message})
}
