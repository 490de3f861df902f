package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mmynk/spendwise/internal/models"
)

// tokenIssuer is written to and required in every session token.
const tokenIssuer = "spendwise"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Claims is the payload of a session token. UserID mirrors the subject.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 session tokens. Verification needs
// nothing but the token and the shared key, so any instance holding the
// same key accepts the same tokens.
type JWTManager struct {
	key    []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTManager creates a manager signing with secretKey. Tokens expire
// after tokenDuration.
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	m := &JWTManager{
		key: []byte(secretKey),
		ttl: tokenDuration,
		now: time.Now,
	}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	return m
}

// Generate signs a token identifying user.
func (m *JWTManager) Generate(user *models.User) (string, error) {
	issued := m.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature, algorithm, issuer and expiry of a token
// and returns its claims. Every failure wraps ErrInvalidToken.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := m.parser.ParseWithClaims(tokenString, &claims, m.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" || claims.UserID != claims.Subject {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (m *JWTManager) keyFunc(*jwt.Token) (any, error) {
	return m.key, nil
}
