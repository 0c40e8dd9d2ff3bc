package session

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/pngfun/backend/config"
)

// NewCookieStore returns the store backing short lived sign-in state such
// as the SIWE nonce. Values are signed with the configured secret.
func NewCookieStore(cfg config.SessionConfigs, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return store
}
