package domain

import (
	"context"
	"fmt"
	"strings"
)

// Question is a single multiple-choice question inside a quiz.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Validate enforces the correct-answer bounds invariant at the write boundary.
func (q *Question) Validate() ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(q.Question) == "" {
		errs = append(errs, NewMissingFieldError("question"))
	}
	if len(q.Options) < 2 {
		errs = append(errs, NewValidationError("options", "at least two options are required"))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, NewValidationError(fmt.Sprintf("options[%d]", i), "must not be empty"))
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		errs = append(errs, NewOutOfRangeError("correctAnswer", q.CorrectAnswer, 0, len(q.Options)-1))
	}
	return errs
}

// Quiz is a document in the quizzes collection.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   int64      `json:"createdAt"`
}

// Validate validates the quiz before it is written.
func (q *Quiz) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Title) == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if strings.TrimSpace(q.Description) == "" {
		errs = append(errs, NewMissingFieldError("description"))
	}
	if len(q.Questions) == 0 {
		errs = append(errs, NewValidationError("questions", "at least one question is required"))
	}
	for i, question := range q.Questions {
		for _, qErr := range question.Validate() {
			errs = append(errs, NewValidationError(
				fmt.Sprintf("questions[%d].%s", i, qErr.Field), qErr.Message))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// QuizRepository defines persistence for quiz documents.
type QuizRepository interface {
	Save(ctx context.Context, quiz *Quiz) error
	GetByID(ctx context.Context, id string) (*Quiz, error)
	GetAll(ctx context.Context) ([]*Quiz, error)
	Delete(ctx context.Context, id string) error
}
