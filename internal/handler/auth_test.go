package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safari-hire/dashboard/internal/domain"
	"github.com/safari-hire/dashboard/internal/repo"
	"github.com/safari-hire/dashboard/internal/service"
)

type sessionBody struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user"`
	Error         string           `json:"error"`
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t, signedOut())

	rec := env.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "staff", "password": "staff123"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[sessionBody](t, rec)
	assert.True(t, body.Authenticated)
	require.NotNil(t, body.User)
	assert.Equal(t, domain.Identity{ID: "2", Username: "staff", Name: "Staff User", Role: domain.RoleStaff}, *body.User)
	assert.NotContains(t, rec.Body.String(), "staff123")
	assert.True(t, env.gate.IsAuthenticated())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "nope"},
		{name: "unknown user", username: "ghost", password: "admin123"},
		{name: "case differs", username: "Admin", password: "admin123"},
		{name: "empty", username: "", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, signedOut())

			rec := env.do(t, http.MethodPost, "/auth/login", map[string]string{"username": tt.username, "password": tt.password})

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decode[apiError](t, rec)
			assert.Equal(t, "unauthorized", body.Error.Code)
			assert.Equal(t, domain.InvalidCredentialsMessage, body.Error.Message)

			session := decode[sessionBody](t, env.do(t, http.MethodGet, "/auth/session", nil))
			assert.False(t, session.Authenticated)
			assert.Nil(t, session.User)
			assert.Equal(t, domain.InvalidCredentialsMessage, session.Error)
		})
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	env := newTestEnv(t, signedOut())

	rec := env.do(t, http.MethodPost, "/auth/login", `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.gate.IsAuthenticated())
}

func TestLogin_ClientGoneDuringDelay(t *testing.T) {
	env := newTestEnv(t, signedOut(), withLoginDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"admin","password":"admin123"}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Body.String())
	assert.False(t, env.gate.IsAuthenticated(), "credentials must not be checked after the client left")
}

func TestLogin_WaitsForDelay(t *testing.T) {
	env := newTestEnv(t, signedOut(), withLoginDelay(20*time.Millisecond))

	start := time.Now()
	rec := env.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "admin", "password": "admin123"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestGuardedRoutes_RequireSession(t *testing.T) {
	env := newTestEnv(t, signedOut())

	for _, path := range []string{"/customers", "/bookings", "/dashboard/stats", "/export"} {
		rec := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/customers", nil).Code)

	rec := env.do(t, http.MethodPost, "/auth/logout", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/customers", nil).Code)
	session := decode[sessionBody](t, env.do(t, http.MethodGet, "/auth/session", nil))
	assert.False(t, session.Authenticated)
}

func TestGetSession_SignedIn(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/auth/session", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[sessionBody](t, rec)
	assert.True(t, body.Authenticated)
	require.NotNil(t, body.User)
	assert.Equal(t, "admin", body.User.Username)
	assert.Empty(t, body.Error)
}

// A persisted flag without a readable identity leaves the gate signed out;
// logout must still be reachable to clear it.
func TestLogout_ClearsStaleFlagWhenSignedOut(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, service.KeyIsAuthenticated, []byte("true")))
	env := newTestEnv(t, signedOut(), withKV(kv))
	require.False(t, env.gate.IsAuthenticated())

	rec := env.do(t, http.MethodPost, "/auth/logout", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, err := kv.Get(ctx, service.KeyIsAuthenticated)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "flag should be removed, got %v", err)
}
