package apperror

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func testApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: NewErrorHandler(zap.NewNop()),
	})
	app.Get("/things/42", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func do(t *testing.T, app *fiber.App) (int, Envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/things/42", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v (body: %s)", err, body)
	}
	return resp.StatusCode, envelope
}

func TestErrorHandler_DomainError(t *testing.T) {
	status, envelope := do(t, testApp(NotFound("user not found")))

	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if envelope.StatusCode != 404 || envelope.Error != "Not Found" || envelope.Message != "user not found" {
		t.Fatalf("envelope = %+v", envelope)
	}
	if envelope.Path != "/things/42" || envelope.Method != "GET" {
		t.Fatalf("envelope path/method = %q %q", envelope.Path, envelope.Method)
	}
	if envelope.Timestamp == "" {
		t.Fatal("expected timestamp")
	}
}

func TestErrorHandler_InfrastructureError(t *testing.T) {
	status, envelope := do(t, testApp(errors.New("pg: connection refused")))

	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	// Internal detail never leaks outward.
	if envelope.Message != "internal server error" {
		t.Fatalf("message = %q", envelope.Message)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		code int
	}{
		{Conflict("x"), 409},
		{NotFound("x"), 404},
		{Unauthorized("x"), 401},
		{Validation("x"), 400},
	}
	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Fatalf("%q code = %d, want %d", tt.err.StatusText(), tt.err.Code, tt.code)
		}
		if tt.err.Error() != "x" {
			t.Fatalf("Error() = %q", tt.err.Error())
		}
	}
}
