package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pngfun/backend/config"
	"github.com/pngfun/backend/internal/common"
	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/router"
	"github.com/pngfun/backend/pkg/testutil"
	"github.com/pngfun/backend/pkg/xcontext"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func requestContext(ctx context.Context, req *http.Request) (context.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return ctx, w
}

func Test_WithSessionUser(t *testing.T) {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)

	token, err := xcontext.TokenEngine(ctx).Generate(time.Hour, model.SessionToken{
		UserID:        testutil.User1.ID,
		WalletAddress: testutil.User1.WalletAddress,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Auth.SessionToken.Name, Value: token})
	reqCtx, _ := requestContext(ctx, req)

	reqCtx, err = WithSessionUser()(reqCtx)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, xcontext.RequestUserID(reqCtx))

	_, err = Authenticate()(reqCtx)
	require.NoError(t, err)
}

func Test_WithSessionUser_Anonymous(t *testing.T) {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie"},
		{name: "malformed token", cookie: &http.Cookie{Name: cfg.Auth.SessionToken.Name, Value: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			reqCtx, _ := requestContext(ctx, req)

			reqCtx, err := WithSessionUser()(reqCtx)
			require.NoError(t, err)
			require.Empty(t, xcontext.RequestUserID(reqCtx))

			_, err = Authenticate()(reqCtx)
			require.ErrorIs(t, err, errorx.Error{Code: errorx.Unauthenticated})
		})
	}
}

func Test_HandleSetCookie(t *testing.T) {
	ctx := testutil.MockContext()
	reqCtx, w := requestContext(ctx, httptest.NewRequest(http.MethodPost, "/api/complete-siwe", nil))
	reqCtx = xcontext.WithResponse(reqCtx, &model.CompleteSIWEResponse{
		Status:       "success",
		IsValid:      true,
		SessionToken: "token",
	})

	_, err := HandleSetCookie()(reqCtx)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "user_session", cookies[0].Name)
	require.Equal(t, "token", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
	require.True(t, cookies[0].Secure)
	require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	require.Equal(t, 30*24*60*60, cookies[0].MaxAge)
}

func Test_HandleSaveSession(t *testing.T) {
	ctx := testutil.MockContext()
	reqCtx, w := requestContext(ctx, httptest.NewRequest(http.MethodGet, "/api/nonce", nil))
	reqCtx = xcontext.WithResponse(reqCtx, &model.GetNonceResponse{Nonce: "abc"})

	_, err := HandleSaveSession()(reqCtx)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "siwe", cookies[0].Name)

	// The saved session is readable by the next request.
	next := httptest.NewRequest(http.MethodPost, "/api/complete-siwe", nil)
	next.AddCookie(cookies[0])
	sess, err := xcontext.SessionStore(ctx).Get(next, "siwe")
	require.NoError(t, err)
	require.Equal(t, "abc", sess.Values["nonce"])
}

func Test_HandleSaveSession_OtherResponse(t *testing.T) {
	ctx := testutil.MockContext()
	reqCtx, w := requestContext(ctx, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	reqCtx = xcontext.WithResponse(reqCtx, &model.GetMeResponse{})

	_, err := HandleSaveSession()(reqCtx)
	require.NoError(t, err)
	require.Empty(t, w.Result().Cookies())
}

func Test_RateLimiter(t *testing.T) {
	ctx := testutil.MockContext()
	limiter := NewRateLimiter(config.RateLimitConfigs{RequestsPerSecond: 1, Burst: 2})
	now := time.Now()
	limiter.now = func() time.Time { return now }

	call := func(ip, userID string) error {
		req := httptest.NewRequest(http.MethodPost, "/api/votes", nil)
		reqCtx, _ := requestContext(ctx, req)
		reqCtx = xcontext.WithClientIP(reqCtx, ip)
		if userID != "" {
			reqCtx = xcontext.WithRequestUserID(reqCtx, userID)
		}
		_, err := limiter.Middleware()(reqCtx)
		return err
	}

	require.NoError(t, call("10.0.0.1", ""))
	require.NoError(t, call("10.0.0.1", ""))
	require.ErrorIs(t, call("10.0.0.1", ""), errorx.Error{Code: errorx.TooManyRequests})

	// Other clients keep their own budget.
	require.NoError(t, call("10.0.0.2", ""))
	require.NoError(t, call("10.0.0.1", testutil.User1.ID))

	// Tokens refill with time.
	now = now.Add(time.Second)
	require.NoError(t, call("10.0.0.1", ""))
}

func Test_RateLimiter_ForwardedFor(t *testing.T) {
	tests := []struct {
		name           string
		trustedProxies []string
		remoteAddr     string
		want           []int
	}{
		{
			name:       "header ignored from untrusted peers",
			remoteAddr: "203.0.113.7:4000",
			want:       []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests},
		},
		{
			name:           "header honored behind a trusted proxy",
			trustedProxies: []string{"10.0.0.0/8"},
			remoteAddr:     "10.0.0.5:4000",
			want:           []int{http.StatusOK, http.StatusOK, http.StatusOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutil.MockConfigs()
			cfg.ApiServer.TrustedProxies = tt.trustedProxies
			ctx := xcontext.WithConfigs(testutil.MockContext(), cfg)

			r := router.New(ctx)
			limited := r.Branch()
			limited.Before(NewRateLimiter(config.RateLimitConfigs{RequestsPerSecond: 1, Burst: 2}).Middleware())
			router.POST(limited, "/api/votes", func(context.Context, *struct{}) (*struct{}, error) {
				return nil, nil
			})

			codes := []int{}
			for i := 0; i < 3; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/votes", nil)
				req.RemoteAddr = tt.remoteAddr
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
				w := httptest.NewRecorder()

				r.Handler().ServeHTTP(w, req)
				codes = append(codes, w.Code)
			}

			require.Equal(t, tt.want, codes)
		})
	}
}

func Test_Prometheus(t *testing.T) {
	ctx := testutil.MockContext()
	req := httptest.NewRequest(http.MethodPost, "/api/prometheus-test", nil)
	reqCtx, _ := requestContext(ctx, req)

	reqCtx, err := WithStartTime()(reqCtx)
	require.NoError(t, err)
	require.False(t, xcontext.StartTime(reqCtx).IsZero())

	counter := common.PromCounters[common.HTTPRequestTotal]
	Prometheus()(reqCtx)
	Prometheus()(xcontext.WithError(reqCtx, errorx.New(errorx.AlreadyExists, "dup")))

	require.Equal(t, 1.0, promtestutil.ToFloat64(counter.WithLabelValues(http.MethodPost, "/api/prometheus-test", "200")))
	require.Equal(t, 1.0, promtestutil.ToFloat64(counter.WithLabelValues(http.MethodPost, "/api/prometheus-test", "409")))
}
