package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msoledad/aula-api/internal/service/auth"
)

// fakeJWTService validates a single known token and returns a fixed
// error for everything else.
type fakeJWTService struct {
	validToken  string
	userID      uuid.UUID
	validateErr error
}

func (f *fakeJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return f.validToken, nil
}

func (f *fakeJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if tokenString == f.validToken && f.validateErr == nil {
		return &auth.Claims{UserID: f.userID, TokenType: "access"}, nil
	}
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return nil, auth.ErrInvalidToken
}

func (f *fakeJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return f.validToken, nil
}

func (f *fakeJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return f.ValidateToken(ctx, tokenString)
}

func newAuthTestServer(jwt auth.JWTService) (http.Handler, *uuid.UUID) {
	var captured uuid.UUID
	m := NewAuthMiddleware(jwt)
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := GetUserID(r); ok {
			captured = id
		}
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &captured
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	handler, captured := newAuthTestServer(&fakeJWTService{validToken: "good-token", userID: userID})

	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *captured, "user ID should be placed in context")
}

func TestAuthenticateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		header      string
		validateErr error
		wantStatus  int
		wantBody    string
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authorization header required",
		},
		{
			name:       "malformed header",
			header:     "Basic abc123",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid authorization format",
		},
		{
			name:        "expired token",
			header:      "Bearer stale",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
			wantBody:    "Token expired",
		},
		{
			name:        "invalid token",
			header:      "Bearer bogus",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
			wantBody:    "Invalid token",
		},
		{
			name:        "refresh token used as access token",
			header:      "Bearer refresh",
			validateErr: auth.ErrWrongTokenType,
			wantStatus:  http.StatusUnauthorized,
			wantBody:    "Invalid token",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler, _ := newAuthTestServer(&fakeJWTService{
				validToken:  "good-token",
				validateErr: tc.validateErr,
			})

			r := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantBody)
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(r)
	assert.False(t, ok)
}
