package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repeatry/leitner-api/internal/api"
	"github.com/repeatry/leitner-api/internal/api/shared"
	"github.com/repeatry/leitner-api/internal/config"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/mocks"
	"github.com/repeatry/leitner-api/internal/service/auth"
)

func testJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

// authedRequest attaches an authenticated user ID to the request context the
// way the auth middleware would.
func authedRequest(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

func newAuthHandler(t *testing.T, users *mocks.UserStore) *api.AuthHandler {
	t.Helper()
	hasher := auth.NewBcryptHasher(4)
	return api.NewAuthHandler(users, testJWTService(t), hasher, hasher)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	users := mocks.NewUserStore()
	handler := newAuthHandler(t, users)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, api.RegisterRequest{
		Email:    "student@example.com",
		Password: "a long enough password",
	}))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotEqual(t, uuid.Nil, resp.UserID)

	require.Len(t, users.Users, 1)
	assert.Empty(t, users.Users[0].Password, "plaintext password must not be stored")
	assert.NotEmpty(t, users.Users[0].HashedPassword)
}

func TestRegister_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  api.RegisterRequest
	}{
		{name: "missing email", req: api.RegisterRequest{Password: "a long enough password"}},
		{name: "bad email", req: api.RegisterRequest{Email: "nope", Password: "a long enough password"}},
		{name: "short password", req: api.RegisterRequest{Email: "a@b.com", Password: "short"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := newAuthHandler(t, mocks.NewUserStore())
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, tc.req))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	existing, err := domain.NewUser("student@example.com", "a long enough password")
	require.NoError(t, err)

	handler := newAuthHandler(t, mocks.NewUserStore(existing))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, api.RegisterRequest{
		Email:    "student@example.com",
		Password: "a long enough password",
	}))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("a long enough password")
	require.NoError(t, err)

	user := &domain.User{
		ID:             uuid.New(),
		Email:          "student@example.com",
		HashedPassword: hash,
	}

	handler := api.NewAuthHandler(mocks.NewUserStore(user), testJWTService(t), hasher, hasher)

	t.Run("valid credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, api.LoginRequest{
			Email:    "student@example.com",
			Password: "a long enough password",
		}))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, api.LoginRequest{
			Email:    "student@example.com",
			Password: "not the password",
		}))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, api.LoginRequest{
			Email:    "nobody@example.com",
			Password: "a long enough password",
		}))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
