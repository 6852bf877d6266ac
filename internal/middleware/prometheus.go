package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/atoz-lab/backend/internal/common"
	"github.com/atoz-lab/backend/pkg/router"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/go-chi/chi/v5"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)

		status := 200
		if err := xcontext.Error(ctx); err != nil {
			status = router.StatusCode(err)
		}

		// The route pattern keeps the label cardinality bounded.
		path := req.URL.Path
		if rctx := chi.RouteContext(req.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(req.Method, path, fmt.Sprint(status)).Inc()

		if startTime := xcontext.StartTime(ctx); !startTime.IsZero() {
			common.PromHistograms[common.HTTPRequestDurationSeconds].
				WithLabelValues(req.Method, path, fmt.Sprint(status)).
				Observe(time.Since(startTime).Seconds())
		}
	}
}
