package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/nearmeet-backend/internal/models"
	"github.com/sefazor/nearmeet-backend/internal/service"
	"github.com/sefazor/nearmeet-backend/pkg/apperror"
	"github.com/sefazor/nearmeet-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req models.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	if err := h.authService.VerifyEmail(req.Token); err != nil {
		return err
	}

	return c.JSON(models.MessageResponse("email verified successfully"))
}
