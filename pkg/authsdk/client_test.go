package authsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/passgate/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// fakeService mimics the cookie handling of the real service.
func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, code int, body map[string]any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req authsdk.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "hunter22" {
			write(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid email or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-abc", Path: "/", HttpOnly: true})
		write(w, http.StatusOK, map[string]any{"success": true, "message": "logged in"})
	})
	mux.HandleFunc("GET /api/auth/is-auth", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("token"); err != nil || c.Value != "session-abc" {
			write(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Not authorized. Login again"})
			return
		}
		write(w, http.StatusOK, map[string]any{"success": true, "message": "User is authenticated"})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "ok",
			"user":    map[string]any{"id": "01ABC", "name": "Alice", "email": "alice@example.com", "role": "member"},
		})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "", Path: "/", MaxAge: -1})
		write(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out"})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "checks": map[string]any{"database": "error: closed"}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SessionCookieRoundTrip(t *testing.T) {
	srv := fakeService(t)
	ctx := context.Background()

	c, err := authsdk.NewClient(srv.URL + "/")
	require.NoError(t, err)

	ok, err := c.IsAuthenticated(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	err = c.Login(ctx, "alice@example.com", "wrong")
	require.True(t, authsdk.IsStatus(err, http.StatusBadRequest))
	require.True(t, strings.Contains(err.Error(), "Invalid email or password"))

	require.NoError(t, c.Login(ctx, "alice@example.com", "hunter22"))
	require.Equal(t, "session-abc", c.SessionToken())

	ok, err = c.IsAuthenticated(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", me.Email)

	require.NoError(t, c.Logout(ctx))
	require.Empty(t, c.SessionToken())
}

func TestClient_ReadinessDegraded(t *testing.T) {
	srv := fakeService(t)

	c, err := authsdk.NewClient(srv.URL)
	require.NoError(t, err)

	health, err := c.GetReadiness(context.Background())
	require.True(t, authsdk.IsStatus(err, http.StatusServiceUnavailable))
	require.NotNil(t, health)
	require.Equal(t, "error: closed", health.Checks.Database)
}
