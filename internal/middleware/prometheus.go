package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/pngfun/backend/internal/common"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/router"
	"github.com/pngfun/backend/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

// Prometheus records the request count and duration labeled by the HTTP
// status the response was rendered with.
func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		status := "200"
		if err := xcontext.Error(ctx); err != nil {
			status = strconv.Itoa(errorx.HTTPStatus(err))
		}

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(req.Method, req.URL.Path, status).Inc()

		startTime := xcontext.StartTime(ctx)
		if startTime.IsZero() {
			return
		}
		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(req.Method, req.URL.Path, status).
			Observe(time.Since(startTime).Seconds())
	}
}
