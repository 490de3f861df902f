package auth

import (
	"context"

	"github.com/mmynk/spendwise/internal/models"
)

var _ Authenticator = (*PasswordAuthenticator)(nil)

// Authenticator establishes who a caller is before a session token is
// issued. The HTTP layer and the adduser command depend on this rather than
// on the password implementation.
type Authenticator interface {
	// Register creates an account. It fails with ErrInvalidEmail,
	// ErrWeakPassword or ErrEmailExists for bad input.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account matching the credentials or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether a credential is acceptable
	// without storing anything.
	ValidateCredential(credential string) error
}
