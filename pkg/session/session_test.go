package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pngfun/backend/config"
	"github.com/stretchr/testify/require"
)

func TestNewCookieStore(t *testing.T) {
	cfg := config.SessionConfigs{Secret: "secret", Name: "siwe", MaxAge: 10 * time.Minute}
	store := NewCookieStore(cfg, true)

	require.Equal(t, 600, store.Options.MaxAge)
	require.True(t, store.Options.Secure)
	require.True(t, store.Options.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/nonce", nil)
	w := httptest.NewRecorder()

	sess, err := store.Get(req, cfg.Name)
	require.NoError(t, err)
	sess.Values["nonce"] = "abc"
	require.NoError(t, sess.Save(req, w))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "siwe", cookies[0].Name)

	next := httptest.NewRequest(http.MethodPost, "/api/complete-siwe", nil)
	next.AddCookie(cookies[0])
	sess, err = store.Get(next, cfg.Name)
	require.NoError(t, err)
	require.Equal(t, "abc", sess.Values["nonce"])
}
