package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mmynk/spendwise/internal/apierr"
	"github.com/mmynk/spendwise/internal/storage"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000

	maxActionLength  = 100
	maxDetailsLength = 500
)

var errInvalidLimit = errors.New("limit must be a positive integer")

// LogService exposes the caller's activity log.
type LogService struct {
	store    storage.LogStore
	activity *ActivityRecorder
	logger   *slog.Logger
}

// NewLogService creates a new log service.
func NewLogService(store storage.LogStore, activity *ActivityRecorder, logger *slog.Logger) *LogService {
	return &LogService{
		store:    store,
		activity: activity,
		logger:   logger,
	}
}

type logRequest struct {
	Action  string `json:"action"`
	Details string `json:"details"`
}

// parseLimit reads the limit query parameter. Values above the maximum are
// clamped.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLogLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, apierr.Invalid("limit", errInvalidLimit)
	}
	return min(limit, maxLogLimit), nil
}

// List returns the caller's log entries, newest first.
func (s *LogService) List(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		apierr.Write(w, err)
		return
	}

	entries, err := s.store.ListLogsByUser(r.Context(), userID, limit)
	if err != nil {
		s.logger.Error("Failed to list logs", "user_id", userID, "error", err)
		apierr.Write(w, storeError(err, "log entry"))
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Create appends an entry supplied by the caller.
func (s *LogService) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req logRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	action := strings.TrimSpace(req.Action)
	details := strings.TrimSpace(req.Details)
	if err := required("action", action); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := checkLength("action", action, maxActionLength); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := checkLength("details", details, maxDetailsLength); err != nil {
		apierr.Write(w, err)
		return
	}

	entry, err := s.activity.Append(r.Context(), userID, action, details)
	if err != nil {
		s.logger.Error("Failed to append log", "user_id", userID, "error", err)
		apierr.Write(w, storeError(err, "log entry"))
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}
