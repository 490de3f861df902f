package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/spendwise/internal/apierr"
	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

// AuthService handles registration, login and the current user.
type AuthService struct {
	authenticator auth.Authenticator
	users         storage.UserStore
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, users storage.UserStore, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new user account and returns a session token.
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	s.logger.Info("Register request", "email", req.Email)

	if err := required("name", req.Name); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := checkLength("name", req.Name, 100); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := required("email", req.Email); err != nil {
		apierr.Write(w, err)
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Email, "error", err)
		apierr.Write(w, registerError(err))
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		apierr.Write(w, err)
		return
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func registerError(err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail):
		return apierr.Invalid("email", err)
	case errors.Is(err, auth.ErrWeakPassword):
		return apierr.Invalid("password", err)
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, storage.ErrConflict):
		return apierr.NewField(apierr.CodeAlreadyExists, "email", auth.ErrEmailExists)
	default:
		return storeError(err, "user")
	}
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	s.logger.Info("Login request", "email", req.Email)

	if err := required("email", req.Email); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := required("password", req.Password); err != nil {
		apierr.Write(w, err)
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.logger.Warn("Login failed", "email", req.Email)
		apierr.Write(w, apierr.New(apierr.CodeUnauthenticated, auth.ErrInvalidCredentials))
		return
	}
	if err != nil {
		s.logger.Error("Login failed", "email", req.Email, "error", err)
		apierr.Write(w, storeError(err, "user"))
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		apierr.Write(w, err)
		return
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Me returns the authenticated user's account.
func (s *AuthService) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	user, err := s.users.GetUserByID(r.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to load user", "user_id", userID, "error", err)
		apierr.Write(w, storeError(err, "user"))
		return
	}
	if user == nil {
		// The token outlived its account.
		apierr.Write(w, apierr.New(apierr.CodeUnauthenticated, auth.ErrInvalidToken))
		return
	}

	writeJSON(w, http.StatusOK, user)
}
