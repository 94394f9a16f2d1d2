package domain

import "context"

// AuthProvider is the port to the external identity service. It issues
// unique user identifiers and handles password-based sign-in. Its error
// messages are treated as opaque strings to surface to users.
type AuthProvider interface {
	// CreateAccount registers an email/password account and returns the
	// issued uid.
	CreateAccount(ctx context.Context, email, password string) (string, error)
	// VerifyCredentials checks the password for the account and returns its
	// uid.
	VerifyCredentials(ctx context.Context, email, password string) (string, error)
	// SignOut ends the active session for the uid.
	SignOut(ctx context.Context, uid string) error
	// DeleteAccount removes the account belonging to the uid.
	DeleteAccount(ctx context.Context, uid string) error
}
