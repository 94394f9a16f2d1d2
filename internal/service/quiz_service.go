package service

import (
	"context"
	"errors"
	"time"

	"quiz-admin/internal/domain"
	"quiz-admin/internal/dto"
	"quiz-admin/internal/logger"
	"quiz-admin/internal/util"

	"go.uber.org/zap"
)

// QuizService covers quiz CRUD. Validation happens here, at the write
// boundary, instead of being detected after the fact.
type QuizService interface {
	CreateQuiz(ctx context.Context, req dto.SaveQuizRequest) (*domain.Quiz, error)
	GetQuiz(ctx context.Context, id string) (*domain.Quiz, error)
	ListQuizzes(ctx context.Context) ([]*domain.Quiz, error)
	// UpdateQuiz fully overwrites the quiz document, keeping its creation
	// time.
	UpdateQuiz(ctx context.Context, id string, req dto.SaveQuizRequest) (*domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
}

type quizServiceImpl struct {
	quizRepo domain.QuizRepository
}

// NewQuizService creates a new instance of QuizService.
func NewQuizService(quizRepo domain.QuizRepository) QuizService {
	return &quizServiceImpl{quizRepo: quizRepo}
}

func (s *quizServiceImpl) CreateQuiz(ctx context.Context, req dto.SaveQuizRequest) (*domain.Quiz, error) {
	quiz := req.ToDomain()
	quiz.ID = util.NewULID()
	quiz.CreatedAt = time.Now().UnixMilli()

	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.quizRepo.Save(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}

	logger.Get().Info("Quiz created", zap.String("quizID", quiz.ID), zap.String("title", quiz.Title))
	return quiz, nil
}

func (s *quizServiceImpl) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, domain.NewNotFoundError("Quiz not found")
		}
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	return quiz, nil
}

func (s *quizServiceImpl) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	quizzes, err := s.quizRepo.GetAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	return quizzes, nil
}

func (s *quizServiceImpl) UpdateQuiz(ctx context.Context, id string, req dto.SaveQuizRequest) (*domain.Quiz, error) {
	existing, err := s.GetQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	quiz := req.ToDomain()
	quiz.ID = id
	quiz.CreatedAt = existing.CreatedAt

	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.quizRepo.Save(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}

	logger.Get().Info("Quiz updated", zap.String("quizID", id))
	return quiz, nil
}

func (s *quizServiceImpl) DeleteQuiz(ctx context.Context, id string) error {
	if err := s.quizRepo.Delete(ctx, id); err != nil {
		return domain.NewInternalError("failed to delete quiz", err)
	}
	logger.Get().Info("Quiz deleted", zap.String("quizID", id))
	return nil
}
