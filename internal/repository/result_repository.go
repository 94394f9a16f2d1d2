package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"quiz-admin/internal/domain"
)

// docResultRepository implements domain.ResultRepository on the document
// store.
type docResultRepository struct {
	store domain.DocumentStore
}

// NewResultRepository creates a new instance of docResultRepository.
func NewResultRepository(store domain.DocumentStore) domain.ResultRepository {
	return &docResultRepository{store: store}
}

func (r *docResultRepository) Save(ctx context.Context, result *domain.QuizResult) error {
	if result.ID == "" {
		return domain.NewMissingFieldError("id")
	}
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", result.ID, err)
	}
	if err := r.store.Set(ctx, ResultsCollection, result.ID, doc); err != nil {
		return fmt.Errorf("failed to save result %s: %w", result.ID, err)
	}
	return nil
}

// GetByID returns domain.ErrDocumentNotFound when absent.
func (r *docResultRepository) GetByID(ctx context.Context, id string) (*domain.QuizResult, error) {
	raw, err := r.store.Get(ctx, ResultsCollection, id)
	if err != nil {
		return nil, err
	}
	var result domain.QuizResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result %s: %w", id, err)
	}
	result.ID = id
	return &result, nil
}

// GetAllByCompletedAtDesc returns results ordered by completion time, most
// recent first. This is the one ordered query the system runs.
func (r *docResultRepository) GetAllByCompletedAtDesc(ctx context.Context) ([]*domain.QuizResult, error) {
	docs, err := r.store.Query(ctx, ResultsCollection, "completedAt", true)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	results := make([]*domain.QuizResult, 0, len(docs))
	for _, kd := range docs {
		var result domain.QuizResult
		if err := json.Unmarshal(kd.Doc, &result); err != nil {
			return nil, fmt.Errorf("failed to decode result %s: %w", kd.Key, err)
		}
		result.ID = kd.Key
		results = append(results, &result)
	}
	return results, nil
}

func (r *docResultRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, ResultsCollection, id)
}
