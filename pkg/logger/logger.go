package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. APP_ENV=development switches to the
// human-readable development encoder.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
