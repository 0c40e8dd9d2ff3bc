package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/router"
	"github.com/pngfun/backend/pkg/xcontext"
)

// WithSessionUser reads the session cookie and, if it carries a valid token,
// stores the user id in the context. Requests without a valid cookie pass
// through anonymously.
func WithSessionUser() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)
		cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.SessionToken.Name)
		if err != nil {
			if !errors.Is(err, http.ErrNoCookie) {
				xcontext.Logger(ctx).Debugf("Cannot read session cookie: %v", err)
			}
			return ctx, nil
		}

		var token model.SessionToken
		if err := xcontext.TokenEngine(ctx).Verify(cookie.Value, &token); err != nil {
			xcontext.Logger(ctx).Debugf("Invalid session token: %v", err)
			return ctx, nil
		}

		return xcontext.WithRequestUserID(ctx, token.UserID), nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}
		return ctx, nil
	}
}
