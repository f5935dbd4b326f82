package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/nearmeet-backend/internal/middleware"
	"github.com/sefazor/nearmeet-backend/internal/models"
	"github.com/sefazor/nearmeet-backend/internal/service"
	"github.com/sefazor/nearmeet-backend/pkg/apperror"
	"github.com/sefazor/nearmeet-backend/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.LocalUserID).(uint)
	if !ok {
		return apperror.Unauthorized("unauthorized user")
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.LocalUserID).(uint)
	if !ok {
		return apperror.Unauthorized("unauthorized user")
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	profile, err := h.userService.UpdateProfile(userID, req)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// GetNearby always searches with the default radius; the service-level
// distance override is not part of the HTTP contract.
func (h *UserHandler) GetNearby(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.LocalUserID).(uint)
	if !ok {
		return apperror.Unauthorized("unauthorized user")
	}

	profiles, err := h.userService.FindNearbyUsers(userID, service.DefaultMaxDistanceMeters)
	if err != nil {
		return err
	}

	return c.JSON(profiles)
}

func (h *UserHandler) UploadPhoto(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.LocalUserID).(uint)
	if !ok {
		return apperror.Unauthorized("unauthorized user")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return apperror.Validation("photo file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperror.Validation("could not read photo file")
	}
	defer file.Close()

	profile, err := h.userService.AddPhoto(userID, fileHeader.Filename, file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}
