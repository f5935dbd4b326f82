package apperror

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Envelope is the uniform error body returned for every failed request.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// NewErrorHandler returns the Fiber error handler that renders the envelope.
// Domain errors keep their code and message; anything else is an
// infrastructure fault and surfaces as a generic 500.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var appErr *Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			code = appErr.Code
			message = appErr.Message
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		default:
			logger.Error("unhandled request error",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(Envelope{
			StatusCode: code,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Path:       c.Path(),
			Method:     c.Method(),
			Error:      http.StatusText(code),
			Message:    message,
		})
	}
}
