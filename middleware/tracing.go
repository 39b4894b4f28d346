package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gintechsystems/wellrested/dispatch"
)

// tracerName identifies this instrumentation to the OTEL provider.
const tracerName = "github.com/gintechsystems/wellrested/middleware"

// Tracing returns a middleware that opens an OpenTelemetry span around
// the rest of the chain. The span records method, path, and the final
// status code; dispatch errors mark the span as failed.
func Tracing() dispatch.Middleware {
	tracer := otel.Tracer(tracerName)

	return dispatch.MiddlewareFunc(func(req *http.Request, res *dispatch.Response, next dispatch.Next) (*dispatch.Response, error) {
		ctx, span := tracer.Start(req.Context(), req.Method+" "+req.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.path", req.URL.Path),
			),
		)
		defer span.End()

		req = req.WithContext(ctx)

		out, err := res, error(nil)
		if next != nil {
			out, err = next(req, res)
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return out, err
		}

		span.SetAttributes(attribute.Int("http.response.status_code", out.Status()))
		if out.Status() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(out.Status()))
		}
		return out, nil
	})
}
