package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"quiz-admin/internal/domain"
)

// docQuizRepository implements domain.QuizRepository on the document store.
type docQuizRepository struct {
	store domain.DocumentStore
}

// NewQuizRepository creates a new instance of docQuizRepository.
func NewQuizRepository(store domain.DocumentStore) domain.QuizRepository {
	return &docQuizRepository{store: store}
}

func (r *docQuizRepository) Save(ctx context.Context, quiz *domain.Quiz) error {
	if quiz.ID == "" {
		return domain.NewMissingFieldError("id")
	}
	doc, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("failed to encode quiz %s: %w", quiz.ID, err)
	}
	if err := r.store.Set(ctx, QuizzesCollection, quiz.ID, doc); err != nil {
		return fmt.Errorf("failed to save quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// GetByID returns domain.ErrDocumentNotFound when absent.
func (r *docQuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	raw, err := r.store.Get(ctx, QuizzesCollection, id)
	if err != nil {
		return nil, err
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, fmt.Errorf("failed to decode quiz %s: %w", id, err)
	}
	quiz.ID = id
	return &quiz, nil
}

func (r *docQuizRepository) GetAll(ctx context.Context) ([]*domain.Quiz, error) {
	docs, err := r.store.GetAll(ctx, QuizzesCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	quizzes := make([]*domain.Quiz, 0, len(docs))
	for key, raw := range docs {
		var quiz domain.Quiz
		if err := json.Unmarshal(raw, &quiz); err != nil {
			return nil, fmt.Errorf("failed to decode quiz %s: %w", key, err)
		}
		quiz.ID = key
		quizzes = append(quizzes, &quiz)
	}
	return quizzes, nil
}

func (r *docQuizRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, QuizzesCollection, id)
}
