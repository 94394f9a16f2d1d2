package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"quiz-admin/internal/domain"
)

// docUserRepository implements domain.UserRepository on the document store.
type docUserRepository struct {
	store domain.DocumentStore
}

// NewUserRepository creates a new instance of docUserRepository.
func NewUserRepository(store domain.DocumentStore) domain.UserRepository {
	return &docUserRepository{store: store}
}

// Save writes the profile document. The storage key is always user.UID; this
// is the write-path guard for the key/uid invariant.
func (r *docUserRepository) Save(ctx context.Context, user *domain.User) error {
	if user.UID == "" {
		return domain.NewMissingFieldError("uid")
	}
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user %s: %w", user.UID, err)
	}
	if err := r.store.Set(ctx, UsersCollection, user.UID, doc); err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UID, err)
	}
	return nil
}

// GetByUID retrieves a profile document by its storage key.
// Returns domain.ErrDocumentNotFound when absent.
func (r *docUserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	raw, err := r.store.Get(ctx, UsersCollection, uid)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", uid, err)
	}
	return &user, nil
}

// GetAll returns every profile document. The storage key wins over the
// embedded uid field, matching how the admin portal listed users.
func (r *docUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	docs, err := r.store.GetAll(ctx, UsersCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*domain.User, 0, len(docs))
	for key, raw := range docs {
		var user domain.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", key, err)
		}
		user.UID = key
		users = append(users, &user)
	}
	return users, nil
}

// UpdateFields applies a partial overwrite to the document keyed by uid.
func (r *docUserRepository) UpdateFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	return r.store.Update(ctx, UsersCollection, uid, fields)
}

// Delete removes the profile document.
func (r *docUserRepository) Delete(ctx context.Context, uid string) error {
	return r.store.Delete(ctx, UsersCollection, uid)
}

// GetAllRaw exposes the undecoded collection for the migration scan.
func (r *docUserRepository) GetAllRaw(ctx context.Context) (map[string][]byte, error) {
	return r.store.GetAll(ctx, UsersCollection)
}

// SaveRaw writes a raw document under the given key, bypassing decoding.
// Only the migration service uses this; damaged documents must be carried
// over byte for byte.
func (r *docUserRepository) SaveRaw(ctx context.Context, key string, doc []byte) error {
	return r.store.Set(ctx, UsersCollection, key, doc)
}
