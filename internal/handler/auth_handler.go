package handler

import (
	"quiz-admin/internal/config"
	"quiz-admin/internal/dto"
	"quiz-admin/internal/logger"
	"quiz-admin/internal/middleware"
	"quiz-admin/internal/service"
	"quiz-admin/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
	cfg         *config.Config
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validation.NewValidator(),
		cfg:         cfg,
	}
}

// Login signs the user in and issues a session token for the admin API.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateLoginRequest(req); len(errs) > 0 {
		return errs
	}

	user, err := h.authService.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := h.authService.CreateJWT(user, h.cfg.Auth.AccessTokenTTL)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{Token: token, User: user})
}

// Logout ends the provider session for the authenticated user.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	if err := h.authService.SignOut(c.Context(), userID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Signed out"})
}

// ValidateMobileLogin wraps sign-in in a structured success/error result for
// the mobile client; it always answers 200.
func (h *AuthHandler) ValidateMobileLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(dto.MobileLoginResult{Success: false, Error: "Invalid request body"})
	}

	result := h.authService.ValidateMobileLogin(c.Context(), req)
	return c.JSON(result)
}

// GetProfile answers the profile lookup endpoint:
// 200 {success:true, user}, 400 on missing uid, 404 when no profile exists,
// 500 on unexpected failure.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	uid := c.Query("uid")
	if uid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ProfileEnvelope{
			Success: false, Error: "User ID is required",
		})
	}

	user, err := h.authService.GetUserProfile(c.Context(), uid)
	if err != nil {
		logger.Get().Error("Profile API error", zap.String("uid", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ProfileEnvelope{
			Success: false, Error: "Internal server error",
		})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ProfileEnvelope{
			Success: false, Error: "User not found",
		})
	}

	return c.JSON(dto.ProfileEnvelope{Success: true, User: user})
}
