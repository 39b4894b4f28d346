package middleware

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/gintechsystems/wellrested/dispatch"
	"github.com/gintechsystems/wellrested/observability"
)

// RateLimitOption is a functional option for configuring the rate
// limiter.
type RateLimitOption func(*rateLimit)

// WithRateLimitLogger sets the logger for the rate limiter.
func WithRateLimitLogger(logger observability.Logger) RateLimitOption {
	return func(rl *rateLimit) {
		rl.logger = logger
	}
}

type rateLimit struct {
	limiter *rate.Limiter
	logger  observability.Logger
}

// RateLimit returns a middleware enforcing a global token bucket of
// rps requests per second with the given burst. Rejected requests get
// a 429 response with a Retry-After header and never reach the rest
// of the chain. Typically registered as a pre-route hook.
func RateLimit(rps, burst int, opts ...RateLimitOption) dispatch.Middleware {
	rl := &rateLimit{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  observability.NopLogger(),
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Process implements dispatch.Middleware.
func (rl *rateLimit) Process(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
	if !rl.limiter.Allow() {
		GetMiddlewareMetrics().rateLimitRejected.Inc()
		rl.logger.WithContext(req.Context()).Warn("rate limit exceeded",
			observability.String("path", req.URL.Path),
			observability.String("method", req.Method),
		)

		res.SetStatus(http.StatusTooManyRequests)
		res.Header().Set("Retry-After", strconv.Itoa(1))
		res.Header().Set("Content-Type", "application/json")
		res.SetBody([]byte(`{"error":"rate limit exceeded"}`))
		return res, nil
	}

	if next == nil {
		return res, nil
	}
	return next(req, res)
}
