package middleware

import (
	"net/http"
	"time"

	"github.com/gintechsystems/wellrested/dispatch"
	"github.com/gintechsystems/wellrested/observability"
)

// AccessLogOption is a functional option for configuring access
// logging.
type AccessLogOption func(*accessLog)

// WithAccessLogSkipPaths disables logging for the given exact paths.
func WithAccessLogSkipPaths(paths ...string) AccessLogOption {
	return func(a *accessLog) {
		for _, path := range paths {
			a.skip[path] = true
		}
	}
}

type accessLog struct {
	logger observability.Logger
	skip   map[string]bool
}

// AccessLog returns a middleware that logs one structured entry per
// dispatched request with method, path, status, response size, and
// duration. Register it as router-level middleware so it wraps the
// matched route.
func AccessLog(logger observability.Logger, opts ...AccessLogOption) dispatch.Middleware {
	a := &accessLog{
		logger: logger,
		skip:   make(map[string]bool),
	}
	if a.logger == nil {
		a.logger = observability.NopLogger()
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Process implements dispatch.Middleware.
func (a *accessLog) Process(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
	if a.skip[req.URL.Path] {
		if next == nil {
			return res, nil
		}
		return next(req, res)
	}

	start := time.Now()

	out, err := res, error(nil)
	if next != nil {
		out, err = next(req, res)
	}

	fields := []observability.Field{
		observability.String("method", req.Method),
		observability.String("path", req.URL.Path),
		observability.Duration("duration", time.Since(start)),
	}
	if err != nil {
		a.logger.WithContext(req.Context()).Error("request failed",
			append(fields, observability.Error(err))...)
		return out, err
	}

	a.logger.WithContext(req.Context()).Info("request handled",
		append(fields,
			observability.Int("status", out.Status()),
			observability.Int("bytes", out.BodyLen()),
		)...)
	return out, nil
}
