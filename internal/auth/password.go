package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/mmynk/spendwise/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailExists        = errors.New("email already registered")
)

// UserStorage is the account persistence the authenticator needs.
// Lookups return a nil user and nil error when nothing matches.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PasswordAuthenticator stores bcrypt hashes and checks passwords against
// them. Emails are normalized before every lookup.
type PasswordAuthenticator struct {
	users UserStorage
	cost  int
}

// NewPasswordAuthenticator creates an authenticator hashing at
// bcrypt.DefaultCost.
func NewPasswordAuthenticator(users UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{users: users, cost: bcrypt.DefaultCost}
}

// WithCost returns a copy of the authenticator hashing with the given bcrypt
// cost. Tests use bcrypt.MinCost.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	return &PasswordAuthenticator{users: a.users, cost: cost}
}

// ValidateCredential rejects passwords shorter than MinPasswordLength runes.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if utf8.RuneCountInString(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register creates an account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, displayName, credential string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	existing, err := a.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, displayName, string(hash))
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the account for email if credential matches its
// hash. Unknown emails and wrong passwords produce the same error.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.lookup(ctx, models.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (a *PasswordAuthenticator) lookup(ctx context.Context, email string) (*models.User, error) {
	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}
