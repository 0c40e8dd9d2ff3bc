package middleware

import (
	"context"
	"net/http"

	"github.com/pngfun/backend/pkg/router"
	"github.com/pngfun/backend/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo(context.Context) []http.Cookie
}

func HandleSetCookie() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		cookieResp, ok := xcontext.Response(ctx).(CookieResponse)
		if ok {
			for _, cookie := range cookieResp.CookieInfo(ctx) {
				http.SetCookie(xcontext.HTTPWriter(ctx), &cookie)
			}
		}

		return ctx, nil
	}
}
