package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gintechsystems/wellrested/dispatch"
	"github.com/gintechsystems/wellrested/observability"
)

// RequestIDHeader is the header name for request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID returns a middleware that assigns each request a unique
// identifier, preserved from the incoming header when present. The ID
// is bound to the request context and echoed on the response header.
// Typically registered as a pre-route hook.
func RequestID() dispatch.Middleware {
	return RequestIDWithGenerator(func() string {
		return uuid.New().String()
	})
}

// RequestIDWithGenerator returns a request ID middleware using a
// custom ID generator.
func RequestIDWithGenerator(generator func() string) dispatch.Middleware {
	return dispatch.MiddlewareFunc(func(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
		requestID := req.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = generator()
		}

		ctx := observability.ContextWithRequestID(req.Context(), requestID)
		req = req.WithContext(ctx)

		res.Header().Set(RequestIDHeader, requestID)

		if next == nil {
			return res, nil
		}
		return next(req, res)
	})
}
