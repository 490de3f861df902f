package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmynk/spendwise/internal/apierr"
	"github.com/mmynk/spendwise/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithUser returns a copy of ctx carrying the given identity.
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, EmailKey, email)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the user ID and email to the request context. Identity is resolved from
// each request alone.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				apierr.Write(w, apierr.New(apierr.CodeUnauthenticated, err))
				return
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				apierr.Write(w, apierr.New(apierr.CodeUnauthenticated, auth.ErrInvalidToken))
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Email)
			if rec, ok := w.(*statusRecorder); ok {
				rec.userID = claims.UserID
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
