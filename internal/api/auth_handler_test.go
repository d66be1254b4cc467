package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallhq/flashcard-api/internal/config"
	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/service/auth"
	"github.com/recallhq/flashcard-api/internal/store"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 7 * 24 * 60,
	})
	require.NoError(t, err)
	return jwtService
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("user@example.com", "Test", "User", "a strong enough password")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$testhashtesthashtesthash"
	user.Password = ""
	return user
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Parallel()

	user := testUser(t)
	handler := NewAuthHandler(
		&stubUserService{registerUser: user},
		newTestJWTService(t))

	body := `{
		"email": "user@example.com",
		"first_name": "Test",
		"last_name": "User",
		"password": "a strong enough password"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, user.ID, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestAuthHandlerRegisterValidation(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&stubUserService{}, newTestJWTService(t))

	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{"email":`},
		{
			name: "missing password",
			body: `{"email": "a@example.com", "first_name": "A", "last_name": "B"}`,
		},
		{
			name: "malformed email",
			body: `{"email": "nope", "first_name": "A", "last_name": "B", "password": "longenough"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(
				http.MethodPost, "/api/auth/register", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandlerRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(
		&stubUserService{registerErr: store.ErrEmailExists},
		newTestJWTService(t))

	body := `{
		"email": "taken@example.com",
		"first_name": "Test",
		"last_name": "User",
		"password": "a strong enough password"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	user := testUser(t)
	handler := NewAuthHandler(&stubUserService{authUser: user}, newTestJWTService(t))

	body := `{"email": "user@example.com", "password": "a strong enough password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, user.ID, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(
		&stubUserService{authErr: auth.ErrInvalidCredentials},
		newTestJWTService(t))

	body := `{"email": "user@example.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestAuthHandlerRefreshToken(t *testing.T) {
	t.Parallel()

	user := testUser(t)
	jwtService := newTestJWTService(t)
	handler := NewAuthHandler(&stubUserService{getUser: user}, jwtService)

	refreshToken, err := jwtService.GenerateRefreshToken(context.Background(), user.ID)
	require.NoError(t, err)

	body := `{"refresh_token": "` + refreshToken + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.RefreshToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RefreshTokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The new access token authenticates as the same user
	claims, err := jwtService.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthHandlerRefreshTokenRejectsAccessToken(t *testing.T) {
	t.Parallel()

	user := testUser(t)
	jwtService := newTestJWTService(t)
	handler := NewAuthHandler(&stubUserService{getUser: user}, jwtService)

	accessToken, err := jwtService.GenerateToken(context.Background(), user.ID)
	require.NoError(t, err)

	body := `{"refresh_token": "` + accessToken + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.RefreshToken(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerRefreshTokenDeletedUser(t *testing.T) {
	t.Parallel()

	user := testUser(t)
	jwtService := newTestJWTService(t)
	handler := NewAuthHandler(&stubUserService{getErr: store.ErrUserNotFound}, jwtService)

	refreshToken, err := jwtService.GenerateRefreshToken(context.Background(), user.ID)
	require.NoError(t, err)

	body := `{"refresh_token": "` + refreshToken + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.RefreshToken(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	t.Parallel()

	user := testUser(t)
	handler := NewAuthHandler(&stubUserService{getUser: user}, newTestJWTService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = withUserID(req, user.ID)
	rec := httptest.NewRecorder()

	handler.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.Email)
	// Credentials never appear in the profile payload
	assert.NotContains(t, rec.Body.String(), user.HashedPassword)
}

func TestAuthHandlerMeUnauthenticated(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&stubUserService{}, newTestJWTService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	handler.Me(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
