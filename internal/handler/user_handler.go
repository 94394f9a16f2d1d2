package handler

import (
	"quiz-admin/internal/dto"
	"quiz-admin/internal/middleware"
	"quiz-admin/internal/service"
	"quiz-admin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
	authService service.AuthService
	validator   *validation.Validator
}

func NewUserHandler(userService service.UserService, authService service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validator:   validation.NewValidator(),
	}
}

// ListUsers returns every user plus the admin/student tallies.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	resp, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateUser creates an auth account and its profile document, stamped with
// the acting admin.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateCreateUserRequest(req); len(errs) > 0 {
		return errs
	}

	actorID, _ := c.Locals(middleware.UserIDKey).(string)
	user, err := h.authService.CreateUser(c.Context(), req, actorID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser rewrites name and role of the given profile.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	uid := c.Params("id")
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	actorID, _ := c.Locals(middleware.UserIDKey).(string)
	if err := h.userService.UpdateUser(c.Context(), uid, req, actorID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User updated"})
}

// DeleteUser removes the profile document and the provider account.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted"})
}
