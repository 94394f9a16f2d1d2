package service

import (
	"context"
	"fmt"
	"time"

	"quiz-admin/internal/domain"
	"quiz-admin/internal/dto"
	"quiz-admin/internal/logger"
	"quiz-admin/internal/util"

	"go.uber.org/zap"
)

const (
	unknownQuizTitle = "Unknown Quiz"
	unknownUserName  = "Unknown User"
)

// ResultService records finished quiz attempts and renders the results
// table: results ordered by completion time, joined in memory with quiz
// titles and user names.
type ResultService interface {
	SubmitResult(ctx context.Context, req dto.SubmitResultRequest) (*domain.QuizResult, error)
	ListResults(ctx context.Context) (*dto.ResultListResponse, error)
	DeleteResult(ctx context.Context, id string) error
}

type resultServiceImpl struct {
	resultRepo domain.ResultRepository
	quizRepo   domain.QuizRepository
	userRepo   domain.UserRepository
}

// NewResultService creates a new instance of ResultService.
func NewResultService(resultRepo domain.ResultRepository, quizRepo domain.QuizRepository, userRepo domain.UserRepository) ResultService {
	return &resultServiceImpl{
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
		userRepo:   userRepo,
	}
}

func (s *resultServiceImpl) SubmitResult(ctx context.Context, req dto.SubmitResultRequest) (*domain.QuizResult, error) {
	result := &domain.QuizResult{
		ID:             util.NewULID(),
		UserID:         req.UserID,
		QuizID:         req.QuizID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		CompletedAt:    time.Now().UnixMilli(),
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	if err := s.resultRepo.Save(ctx, result); err != nil {
		return nil, domain.NewInternalError("failed to save result", err)
	}

	logger.Get().Info("Result recorded",
		zap.String("resultID", result.ID),
		zap.String("userID", result.UserID),
		zap.String("quizID", result.QuizID),
		zap.Int("score", result.Score))
	return result, nil
}

func (s *resultServiceImpl) ListResults(ctx context.Context) (*dto.ResultListResponse, error) {
	results, err := s.resultRepo.GetAllByCompletedAtDesc(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list results", err)
	}

	quizzes, err := s.quizRepo.GetAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list users", err)
	}

	quizTitles := make(map[string]string, len(quizzes))
	for _, q := range quizzes {
		quizTitles[q.ID] = q.Title
	}
	userNames := make(map[string]string, len(users))
	for _, u := range users {
		userNames[u.UID] = u.Name
	}

	resp := &dto.ResultListResponse{Results: make([]dto.ResultWithDetails, 0, len(results))}
	for _, r := range results {
		detail := dto.ResultWithDetails{
			ID:             r.ID,
			UserID:         r.UserID,
			QuizID:         r.QuizID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			CompletedAt:    r.CompletedAt,
			QuizTitle:      unknownQuizTitle,
			UserName:       unknownUserName,
			Percentage:     FormatPercentage(r.Percentage()),
			Passed:         r.IsPassing(),
		}
		if title, ok := quizTitles[r.QuizID]; ok {
			detail.QuizTitle = title
		}
		if name, ok := userNames[r.UserID]; ok {
			detail.UserName = name
		}
		resp.Results = append(resp.Results, detail)
	}
	return resp, nil
}

func (s *resultServiceImpl) DeleteResult(ctx context.Context, id string) error {
	if err := s.resultRepo.Delete(ctx, id); err != nil {
		return domain.NewInternalError("failed to delete result", err)
	}
	return nil
}

// FormatPercentage renders a percentage with one decimal, e.g. "70.0%".
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
