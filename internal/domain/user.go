package domain

import (
	"context"
	"strings"
)

// Role is the application-level role of a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// User represents a profile document in the users collection.
// The storage key of the document MUST equal UID; the repository enforces
// this at the write boundary and the migration service repairs historical
// violations.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	CreatedAt   int64  `json:"createdAt,omitempty"`
	UpdatedAt   int64  `json:"updatedAt,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
	LastLoginAt *int64 `json:"lastLoginAt"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// Validate validates the user profile before it is written.
func (u *User) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(u.UID) == "" {
		errs = append(errs, NewMissingFieldError("uid"))
	}
	if strings.TrimSpace(u.Email) == "" {
		errs = append(errs, NewMissingFieldError("email"))
	}
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if !u.Role.Valid() {
		errs = append(errs, NewValidationError("role", "must be one of: admin, student"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserRepository defines persistence for profile documents.
type UserRepository interface {
	// Save writes the profile document keyed by user.UID.
	Save(ctx context.Context, user *User) error
	// GetByUID returns ErrDocumentNotFound when no profile exists.
	GetByUID(ctx context.Context, uid string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	// UpdateFields applies a partial overwrite to the document keyed by uid.
	UpdateFields(ctx context.Context, uid string, fields map[string]interface{}) error
	Delete(ctx context.Context, uid string) error
	// GetAllRaw returns every document in the users collection keyed by its
	// storage key, without decoding into User. The migration service needs
	// the raw view because damaged documents may not round-trip cleanly.
	GetAllRaw(ctx context.Context) (map[string][]byte, error)
	// SaveRaw writes a raw document under the given key.
	SaveRaw(ctx context.Context, key string, doc []byte) error
}
