package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/gintechsystems/wellrested/dispatch"
	"github.com/gintechsystems/wellrested/observability"
)

// CircuitBreakerOption is a functional option for configuring the
// circuit breaker.
type CircuitBreakerOption func(*circuitBreaker)

// WithCircuitBreakerLogger sets the logger for the circuit breaker.
func WithCircuitBreakerLogger(logger observability.Logger) CircuitBreakerOption {
	return func(cb *circuitBreaker) {
		cb.logger = logger
	}
}

type circuitBreaker struct {
	cb     *gobreaker.CircuitBreaker
	logger observability.Logger
}

// errDownstreamStatus marks a 5xx response as a breaker failure while
// keeping the response itself deliverable.
var errDownstreamStatus = errors.New("downstream server error")

// CircuitBreaker returns a middleware that trips open when the rest of
// the chain keeps failing. A dispatch error or a 5xx status counts as
// a failure; while open, requests short-circuit with a 503 response.
// The breaker trips once at least threshold requests were observed in
// the interval and half of them failed.
func CircuitBreaker(name string, threshold uint32, interval time.Duration, opts ...CircuitBreakerOption) dispatch.Middleware {
	c := &circuitBreaker{logger: observability.NopLogger()}
	for _, opt := range opts {
		opt(c)
	}

	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: threshold,
		Interval:    interval,
		Timeout:     interval,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= threshold && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.Info("circuit breaker state change",
				observability.String("name", name),
				observability.String("from", from.String()),
				observability.String("to", to.String()),
			)
			GetMiddlewareMetrics().circuitBreakerTransitions.WithLabelValues(
				name, from.String(), to.String(),
			).Inc()
		},
	})

	return c
}

// Process implements dispatch.Middleware.
func (c *circuitBreaker) Process(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
	if next == nil {
		return res, nil
	}

	result, err := c.cb.Execute(func() (interface{}, error) {
		out, err := next(req, res)
		if err != nil {
			return out, err
		}
		if out.Status() >= http.StatusInternalServerError {
			return out, errDownstreamStatus
		}
		return out, nil
	})

	switch {
	case err == nil:
		return result.(*dispatch.Response), nil
	case errors.Is(err, errDownstreamStatus):
		// Counted as a breaker failure but still a valid response.
		return result.(*dispatch.Response), nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		GetMiddlewareMetrics().circuitBreakerRejected.Inc()
		res.SetStatus(http.StatusServiceUnavailable)
		res.Header().Set("Content-Type", "application/json")
		res.SetBody([]byte(`{"error":"service unavailable"}`))
		return res, nil
	default:
		if out, ok := result.(*dispatch.Response); ok && out != nil {
			return out, err
		}
		return res, err
	}
}
