package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/spendwise/internal/apierr"
	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/models"
)

func TestRequireAuth(t *testing.T) {
	manager := auth.NewJWTManager("middleware-test-secret", time.Hour)
	other := auth.NewJWTManager("another-secret-entirely", time.Hour)
	expired := auth.NewJWTManager("middleware-test-secret", -time.Minute)

	user := &models.User{ID: "user-1", Email: "alice@example.com"}
	token, err := manager.Generate(user)
	require.NoError(t, err)
	forged, err := other.Generate(user)
	require.NoError(t, err)
	stale, err := expired.Generate(user)
	require.NoError(t, err)

	var gotUser, gotEmail string
	handler := RequireAuth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserID(r.Context())
		gotEmail = GetEmail(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
		{"extra parts", "Bearer " + token + " extra", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized},
		{"expired", "Bearer " + stale, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser, gotEmail = "", ""
			req := httptest.NewRequest(http.MethodGet, "/api/expenses", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusNoContent {
				assert.Empty(t, gotUser, "handler must not run")
				var body apierr.Body
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, apierr.CodeUnauthenticated, body.Code)
				return
			}
			assert.Equal(t, "user-1", gotUser)
			assert.Equal(t, "alice@example.com", gotEmail)
		})
	}
}

func TestRequireAuthKeepsNoStateBetweenRequests(t *testing.T) {
	manager := auth.NewJWTManager("middleware-test-secret", time.Hour)
	alice, err := manager.Generate(&models.User{ID: "alice"})
	require.NoError(t, err)
	bob, err := manager.Generate(&models.User{ID: "bob"})
	require.NoError(t, err)

	handler := RequireAuth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r.Context())))
	}))

	for _, tc := range []struct{ token, want string }{{alice, "alice"}, {bob, "bob"}, {alice, "alice"}} {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.Header.Set("Authorization", "Bearer "+tc.token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, auth.ErrMissingToken)

	_, err = BearerToken("bearer abc")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
