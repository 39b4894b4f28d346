package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gintechsystems/wellrested/dispatch"
	"github.com/gintechsystems/wellrested/observability"
)

// Recovery returns a middleware that recovers from panics in later
// stages, logs the stack, and produces a 500 response. The routing
// core never recovers on its own; install this at the front of the
// chain when the host does not handle panics itself.
func Recovery(logger observability.Logger) dispatch.Middleware {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return dispatch.MiddlewareFunc(func(req *http.Request, res *dispatch.Response, next dispatch.Next) (out *dispatch.Response, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithContext(req.Context()).Error("panic recovered",
					observability.String("path", req.URL.Path),
					observability.String("method", req.Method),
					observability.Any("error", r),
					observability.String("stack", string(debug.Stack())),
				)

				GetMiddlewareMetrics().panicsRecovered.Inc()

				res.SetStatus(http.StatusInternalServerError)
				res.Header().Set("Content-Type", "application/json")
				res.SetBody([]byte(`{"error":"internal server error"}`))
				out, err = res, nil
			}
		}()

		if next == nil {
			return res, nil
		}
		return next(req, res)
	})
}
