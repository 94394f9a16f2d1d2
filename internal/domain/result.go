package domain

import (
	"context"
	"strings"
)

// PassingThreshold is the percentage at or above which a result counts as
// a passing score.
const PassingThreshold = 70.0

// QuizResult is a document in the results collection. UserID and QuizID are
// weak references; no existence check is enforced against the referenced
// documents.
type QuizResult struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	QuizID         string `json:"quizId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	CompletedAt    int64  `json:"completedAt"`
}

// Validate enforces 0 <= score <= totalQuestions at the write boundary.
func (r *QuizResult) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, NewMissingFieldError("userId"))
	}
	if strings.TrimSpace(r.QuizID) == "" {
		errs = append(errs, NewMissingFieldError("quizId"))
	}
	if r.TotalQuestions <= 0 {
		errs = append(errs, NewValidationError("totalQuestions", "must be greater than 0"))
	}
	if r.Score < 0 || (r.TotalQuestions > 0 && r.Score > r.TotalQuestions) {
		errs = append(errs, NewOutOfRangeError("score", r.Score, 0, r.TotalQuestions))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Percentage returns the score as a percentage of the total question count.
func (r *QuizResult) Percentage() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}

// IsPassing reports whether the result meets the passing threshold.
func (r *QuizResult) IsPassing() bool {
	return r.Percentage() >= PassingThreshold
}

// ResultRepository defines persistence for quiz result documents.
type ResultRepository interface {
	Save(ctx context.Context, result *QuizResult) error
	GetByID(ctx context.Context, id string) (*QuizResult, error)
	// GetAllByCompletedAtDesc returns every result ordered by completion
	// time, most recent first.
	GetAllByCompletedAtDesc(ctx context.Context) ([]*QuizResult, error)
	Delete(ctx context.Context, id string) error
}
