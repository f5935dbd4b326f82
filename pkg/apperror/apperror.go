package apperror

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error is a domain failure that maps directly to an HTTP status code.
// Credential and token failures deliberately share generic messages so a
// caller cannot tell which check rejected them.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Conflict(message string) *Error {
	return &Error{Code: fiber.StatusConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: fiber.StatusNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: fiber.StatusUnauthorized, Message: message}
}

func Validation(message string) *Error {
	return &Error{Code: fiber.StatusBadRequest, Message: message}
}

// StatusText returns the standard reason phrase for the error's code.
func (e *Error) StatusText() string {
	return http.StatusText(e.Code)
}
