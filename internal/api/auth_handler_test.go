package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msoledad/aula-api/internal/config"
	"github.com/msoledad/aula-api/internal/domain"
)

func newTestAuthHandler(users *fakeUserStore, jwt *fakeJWTService) *AuthHandler {
	return NewAuthHandler(
		users,
		jwt,
		&fakeHasher{},
		&fakeVerifier{},
		config.AuthConfig{TokenLifetimeMinutes: 60, RefreshTokenLifetimeMinutes: 10080},
	)
}

func seedUser(t *testing.T, users *fakeUserStore, username, email, password string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(username, email, password)
	require.NoError(t, err)
	user.HashedPassword = "hashed:" + password
	user.Password = ""
	users.users[user.ID] = user
	return user
}

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	jwt := &fakeJWTService{accessToken: "access-tok", refreshToken: "refresh-tok"}
	h := newTestAuthHandler(users, jwt)

	r := newAuthedRequest(t, http.MethodPost, "/api/auth/register", uuid.Nil, RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct horse battery",
	})
	w := httptest.NewRecorder()

	h.Register(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody[AuthResponse](t, w)
	assert.Equal(t, "access-tok", resp.AccessToken)
	assert.Equal(t, "refresh-tok", resp.RefreshToken)
	assert.NotEmpty(t, resp.ExpiresAt)

	stored, err := users.GetByUsername(r.Context(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "hashed:correct horse battery", stored.HashedPassword)
	assert.Empty(t, stored.Password, "plaintext password must not be retained")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing username", RegisterRequest{Email: "a@example.com", Password: "longenough1"}},
		{"short username", RegisterRequest{Username: "ab", Email: "a@example.com", Password: "longenough1"}},
		{"bad email", RegisterRequest{Username: "ada", Email: "nope", Password: "longenough1"}},
		{"short password", RegisterRequest{Username: "ada", Email: "a@example.com", Password: "short"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newTestAuthHandler(newFakeUserStore(), &fakeJWTService{})
			r := newAuthedRequest(t, http.MethodPost, "/api/auth/register", uuid.Nil, tc.req)
			w := httptest.NewRecorder()

			h.Register(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	seedUser(t, users, "ada", "ada@example.com", "password123")
	h := newTestAuthHandler(users, &fakeJWTService{})

	r := newAuthedRequest(t, http.MethodPost, "/api/auth/register", uuid.Nil, RegisterRequest{
		Username: "ada",
		Email:    "other@example.com",
		Password: "password123",
	})
	w := httptest.NewRecorder()

	h.Register(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	user := seedUser(t, users, "ada", "ada@example.com", "password123")
	jwt := &fakeJWTService{accessToken: "access-tok", refreshToken: "refresh-tok"}
	h := newTestAuthHandler(users, jwt)

	r := newAuthedRequest(t, http.MethodPost, "/api/auth/login", uuid.Nil, LoginRequest{
		Username: "ada",
		Password: "password123",
	})
	w := httptest.NewRecorder()

	h.Login(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[AuthResponse](t, w)
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, "access-tok", resp.AccessToken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	seedUser(t, users, "ada", "ada@example.com", "password123")
	h := newTestAuthHandler(users, &fakeJWTService{})

	// Wrong password and unknown username respond identically.
	for _, req := range []LoginRequest{
		{Username: "ada", Password: "wrong-password"},
		{Username: "nobody", Password: "password123"},
	} {
		r := newAuthedRequest(t, http.MethodPost, "/api/auth/login", uuid.Nil, req)
		w := httptest.NewRecorder()

		h.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	user := seedUser(t, users, "ada", "ada@example.com", "password123")
	user.Active = false
	h := newTestAuthHandler(users, &fakeJWTService{})

	r := newAuthedRequest(t, http.MethodPost, "/api/auth/login", uuid.Nil, LoginRequest{
		Username: "ada",
		Password: "password123",
	})
	w := httptest.NewRecorder()

	h.Login(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Account is inactive")
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwt := &fakeJWTService{
		accessToken:  "new-access",
		refreshToken: "valid-refresh",
		refreshUser:  userID,
	}
	h := newTestAuthHandler(newFakeUserStore(), jwt)

	r := newAuthedRequest(t, http.MethodPost, "/api/auth/refresh", uuid.Nil, RefreshTokenRequest{
		RefreshToken: "valid-refresh",
	})
	w := httptest.NewRecorder()

	h.RefreshToken(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[AuthResponse](t, w)
	assert.Equal(t, userID, resp.UserID)
	assert.Equal(t, "new-access", resp.AccessToken)
}

func TestRefreshTokenInvalid(t *testing.T) {
	t.Parallel()

	jwt := &fakeJWTService{refreshToken: "valid-refresh"}
	h := newTestAuthHandler(newFakeUserStore(), jwt)

	r := newAuthedRequest(t, http.MethodPost, "/api/auth/refresh", uuid.Nil, RefreshTokenRequest{
		RefreshToken: "forged",
	})
	w := httptest.NewRecorder()

	h.RefreshToken(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid refresh token")
}

func TestMe(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	user := seedUser(t, users, "ada", "ada@example.com", "password123")
	h := newTestAuthHandler(users, &fakeJWTService{})

	r := newAuthedRequest(t, http.MethodGet, "/api/auth/me", user.ID, nil)
	w := httptest.NewRecorder()

	h.Me(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[UserResponse](t, w)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "ada", resp.Username)
	assert.NotContains(t, w.Body.String(), "hashed:", "password hash must not be exposed")
}

func TestMeUnauthenticated(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler(newFakeUserStore(), &fakeJWTService{})

	r := newAuthedRequest(t, http.MethodGet, "/api/auth/me", uuid.Nil, nil)
	w := httptest.NewRecorder()

	h.Me(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	user := seedUser(t, users, "ada", "ada@example.com", "password123")
	h := newTestAuthHandler(users, &fakeJWTService{})

	r := newAuthedRequest(t, http.MethodPost, "/api/auth/password", user.ID, ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "even-better-password",
	})
	w := httptest.NewRecorder()

	h.ChangePassword(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "hashed:even-better-password", users.users[user.ID].HashedPassword)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	user := seedUser(t, users, "ada", "ada@example.com", "password123")
	h := newTestAuthHandler(users, &fakeJWTService{})

	r := newAuthedRequest(t, http.MethodPost, "/api/auth/password", user.ID, ChangePasswordRequest{
		CurrentPassword: "not-my-password",
		NewPassword:     "even-better-password",
	})
	w := httptest.NewRecorder()

	h.ChangePassword(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Current password is incorrect")
	assert.Equal(t, "hashed:password123", users.users[user.ID].HashedPassword)
}
