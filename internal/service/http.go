package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/mmynk/spendwise/internal/apierr"
	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/middleware"
	"github.com/mmynk/spendwise/internal/storage"
)

const maxBodyBytes = 1 << 20

var errBodyRequired = errors.New("request body is required")

// decodeJSON reads a JSON request body into dst. Malformed input is reported
// as a validation error on the offending field when it can be identified.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return apierr.Invalid("body", errBodyRequired)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apierr.Invalid(typeErr.Field, fmt.Errorf("must be a %s", typeErr.Type))
	case errors.As(err, &maxErr):
		return apierr.Invalid("body", fmt.Errorf("request body exceeds %d bytes", maxErr.Limit))
	default:
		return apierr.Invalid("body", fmt.Errorf("malformed JSON: %w", err))
	}
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// callerID returns the authenticated user ID attached by the auth middleware.
func callerID(r *http.Request) (string, error) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		return "", apierr.New(apierr.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// checkOwner rejects access to a record the caller does not own. There are
// no ownerless records, so an empty owner never matches.
func checkOwner(ownerID, userID, kind string) error {
	if ownerID == "" || ownerID != userID {
		return apierr.Errorf(apierr.CodeForbidden, "not authorized to access this %s", kind)
	}
	return nil
}

// storeError maps storage sentinels to API codes. Anything unrecognized is
// returned unchanged and rendered as an internal error.
func storeError(err error, kind string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return apierr.Errorf(apierr.CodeNotFound, "%s not found", kind)
	case errors.Is(err, storage.ErrConflict):
		return apierr.Errorf(apierr.CodeAlreadyExists, "%s already exists", kind)
	case errors.Is(err, storage.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return apierr.New(apierr.CodeUnavailable, storage.ErrUnavailable)
	case errors.Is(err, context.Canceled):
		return apierr.New(apierr.CodeUnavailable, err)
	default:
		return err
	}
}

// checkLength rejects strings longer than max characters.
func checkLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return apierr.Invalid(field, fmt.Errorf("must be at most %d characters", max))
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apierr.Invalid(field, fmt.Errorf("%s is required", field))
	}
	return nil
}
