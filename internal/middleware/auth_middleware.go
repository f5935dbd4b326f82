package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/nearmeet-backend/internal/models"
	"github.com/sefazor/nearmeet-backend/pkg/apperror"
	"github.com/sefazor/nearmeet-backend/pkg/token"
	"go.uber.org/zap"
)

// TokenValidator resolves verified token claims to the stored user record.
// *service.AuthService satisfies it.
type TokenValidator interface {
	ValidateToken(claims *token.Claims) (*models.User, error)
}

// Locals keys for the authenticated principal.
const (
	LocalUserID    = "userID"
	LocalUserEmail = "userEmail"
)

// AuthMiddleware guards protected routes: it extracts the bearer token,
// verifies it, loads the user and rejects inactive or missing accounts.
// Token failures all share one message, and a missing user is reported the
// same way as an inactive one, so a caller learns nothing about which check
// failed. Store errors other than a missing row propagate to the error
// handler unmodified.
func AuthMiddleware(tokens *token.Manager, auth TokenValidator, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return apperror.Unauthorized("invalid or expired token")
		}

		claims, err := tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			return apperror.Unauthorized("invalid or expired token")
		}

		user, err := auth.ValidateToken(claims)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return apperror.Unauthorized("unauthorized user")
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUserEmail, user.Email)

		return c.Next()
	}
}
