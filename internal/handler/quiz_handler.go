package handler

import (
	"quiz-admin/internal/dto"
	"quiz-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type QuizHandler struct {
	quizService service.QuizService
}

func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.quizService.ListQuizzes(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.QuizListResponse{Quizzes: quizzes})
}

func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.GetQuiz(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.SaveQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	quiz, err := h.quizService.CreateQuiz(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	var req dto.SaveQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	quiz, err := h.quizService.UpdateQuiz(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.quizService.DeleteQuiz(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Quiz deleted"})
}
