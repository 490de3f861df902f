package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
	userID string
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func record(w http.ResponseWriter) (*statusRecorder, bool) {
	if rec, ok := w.(*statusRecorder); ok {
		return rec, false
	}
	return &statusRecorder{ResponseWriter: w}, true
}

// Logging logs every request once it completes, with its status, the
// authenticated user (empty before auth) and the duration. Server errors log
// at ERROR, client errors at WARN.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec, _ := record(w)

			next.ServeHTTP(rec, r)

			status := rec.code()
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"user_id", rec.userID,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch {
			case status >= 500:
				logger.ErrorContext(r.Context(), "Request failed", attrs...)
			case status >= 400:
				logger.WarnContext(r.Context(), "Request rejected", attrs...)
			default:
				logger.InfoContext(r.Context(), "Request ok", attrs...)
			}
		})
	}
}
