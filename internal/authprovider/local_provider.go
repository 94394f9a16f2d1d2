// Package authprovider implements the identity service the gateway talks to.
// Accounts are email/password credentials held in their own document
// collection, separate from the application-level users collection.
package authprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-admin/internal/domain"
	"quiz-admin/internal/util"

	"golang.org/x/crypto/bcrypt"
)

const (
	accountsCollection = "accounts"
	sessionsCollection = "sessions"
)

var (
	ErrEmailAlreadyInUse  = errors.New("auth: email already in use")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrAccountNotFound    = errors.New("auth: account not found")
)

// account is the stored credential record. The uid it carries is the
// authoritative identifier for the user across the whole system.
type account struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	CreatedAt    int64  `json:"createdAt"`
}

type session struct {
	SignedInAt int64 `json:"signedInAt"`
}

// LocalProvider implements domain.AuthProvider with bcrypt password hashes
// stored in the document store, keyed by normalized email.
type LocalProvider struct {
	store domain.DocumentStore
}

// NewLocalProvider creates a new instance of LocalProvider.
func NewLocalProvider(store domain.DocumentStore) domain.AuthProvider {
	return &LocalProvider{store: store}
}

// CreateAccount registers a new email/password account and returns the
// issued uid.
func (p *LocalProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	key := normalizeEmail(email)
	if key == "" {
		return "", fmt.Errorf("auth: email is required")
	}
	if len(password) < 6 {
		return "", fmt.Errorf("auth: password must be at least 6 characters")
	}

	if _, err := p.store.Get(ctx, accountsCollection, key); err == nil {
		return "", ErrEmailAlreadyInUse
	} else if !errors.Is(err, domain.ErrDocumentNotFound) {
		return "", fmt.Errorf("auth: failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: failed to hash password: %w", err)
	}

	acc := account{
		UID:          util.NewULID(),
		Email:        key,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UnixMilli(),
	}
	doc, err := json.Marshal(acc)
	if err != nil {
		return "", fmt.Errorf("auth: failed to encode account: %w", err)
	}
	if err := p.store.Set(ctx, accountsCollection, key, doc); err != nil {
		return "", fmt.Errorf("auth: failed to store account: %w", err)
	}
	return acc.UID, nil
}

// VerifyCredentials checks the password for the account and marks the uid as
// signed in.
func (p *LocalProvider) VerifyCredentials(ctx context.Context, email, password string) (string, error) {
	key := normalizeEmail(email)
	raw, err := p.store.Get(ctx, accountsCollection, key)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("auth: failed to load account: %w", err)
	}

	var acc account
	if err := json.Unmarshal(raw, &acc); err != nil {
		return "", fmt.Errorf("auth: failed to decode account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	sess, err := json.Marshal(session{SignedInAt: time.Now().UnixMilli()})
	if err != nil {
		return "", fmt.Errorf("auth: failed to encode session: %w", err)
	}
	if err := p.store.Set(ctx, sessionsCollection, acc.UID, sess); err != nil {
		return "", fmt.Errorf("auth: failed to record session: %w", err)
	}
	return acc.UID, nil
}

// SignOut removes the session marker for the uid. Signing out an absent
// session succeeds.
func (p *LocalProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.store.Delete(ctx, sessionsCollection, uid); err != nil {
		return fmt.Errorf("auth: failed to end session: %w", err)
	}
	return nil
}

// DeleteAccount removes the account belonging to the uid, along with its
// session marker. Accounts are keyed by email, so the lookup is a scan.
func (p *LocalProvider) DeleteAccount(ctx context.Context, uid string) error {
	docs, err := p.store.GetAll(ctx, accountsCollection)
	if err != nil {
		return fmt.Errorf("auth: failed to scan accounts: %w", err)
	}

	for key, raw := range docs {
		var acc account
		if err := json.Unmarshal(raw, &acc); err != nil {
			continue
		}
		if acc.UID != uid {
			continue
		}
		if err := p.store.Delete(ctx, accountsCollection, key); err != nil {
			return fmt.Errorf("auth: failed to delete account: %w", err)
		}
		return p.SignOut(ctx, uid)
	}
	return ErrAccountNotFound
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
