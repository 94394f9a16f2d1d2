package handler

import (
	"quiz-admin/internal/dto"
	"quiz-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ResultHandler struct {
	resultService service.ResultService
}

func NewResultHandler(resultService service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// ListResults returns all results ordered by completion time descending,
// joined with quiz titles and user names.
func (h *ResultHandler) ListResults(c *fiber.Ctx) error {
	resp, err := h.resultService.ListResults(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitResult records a finished quiz attempt.
func (h *ResultHandler) SubmitResult(c *fiber.Ctx) error {
	var req dto.SubmitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.resultService.SubmitResult(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *ResultHandler) DeleteResult(c *fiber.Ctx) error {
	if err := h.resultService.DeleteResult(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Result deleted"})
}
