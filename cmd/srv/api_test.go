package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pngfun/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	s := &srv{
		ctx:     testutil.MockContext(),
		storage: &testutil.MockStorage{},
	}
	testutil.CreateFixtureDb(s.ctx)

	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	return s.handler()
}

func TestApi_Routes(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "active challenge", method: http.MethodGet, path: "/api/challenges", want: http.StatusOK},
		{name: "nonce", method: http.MethodGet, path: "/api/nonce", want: http.StatusOK},
		{name: "config", method: http.MethodGet, path: "/api/config", want: http.StatusOK},
		{name: "leaderboard", method: http.MethodGet, path: "/api/leaderboard?limit=3", want: http.StatusOK},
		{name: "challenge without id", method: http.MethodGet, path: "/api/challenges/get", want: http.StatusBadRequest},
		{name: "me without session", method: http.MethodGet, path: "/api/me", want: http.StatusUnauthorized},
		{
			name:   "onboarding without session",
			method: http.MethodPost,
			path:   "/api/user/onboarding",
			body:   `{"notificationsEnabled":true}`,
			want:   http.StatusUnauthorized,
		},
		{name: "unknown route", method: http.MethodGet, path: "/api/unknown", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)
			require.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestApi_RateLimitedWrites(t *testing.T) {
	handler := newTestHandler(t)

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/votes", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	// Burst is 2 in the mocked configs.
	require.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestApi_Cors(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/votes", nil)
	req.Header.Set("Origin", "https://png.fun")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	require.Equal(t, "https://png.fun", w.Header().Get("Access-Control-Allow-Origin"))
}
