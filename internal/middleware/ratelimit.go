package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/pngfun/backend/config"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/router"
	"github.com/pngfun/backend/pkg/xcontext"
	"golang.org/x/time/rate"
)

const limiterIdleTimeout = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfigs) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		// Drop idle visitors lazily whenever a new one shows up.
		for k, old := range rl.visitors {
			if now.Sub(old.lastSeen) > limiterIdleTimeout {
				delete(rl.visitors, k)
			}
		}

		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Middleware limits requests per authenticated user, or per client IP for
// anonymous requests. The client IP comes from the router, which only reads
// forwarding headers set by a trusted proxy.
func (rl *RateLimiter) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		key := xcontext.RequestUserID(ctx)
		if key == "" {
			key = xcontext.ClientIP(ctx)
		}

		if !rl.allow(key) {
			xcontext.Logger(ctx).Warnf("Rate limit exceeded for %s", key)
			return nil, errorx.New(errorx.TooManyRequests, "Too many requests")
		}

		return ctx, nil
	}
}
