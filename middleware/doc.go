// Package middleware provides middleware for the dispatch pipeline.
//
// All components implement dispatch.Middleware and can be registered
// as router-level middleware, as hooks at a fixed pipeline stage, or
// used standalone in a dispatch.Chain.
//
// # Components
//
//   - HeadFinalizer: discards the body of HEAD responses (structural
//     preparation hook, installed by default)
//   - ContentLength: sets Content-Length from the final body size
//     (structural preparation hook, installed by default)
//   - RequestID: unique request identifier injection
//   - AccessLog: structured request/response logging
//   - Recovery: panic recovery with stack trace logging (opt-in; the
//     core itself never recovers)
//   - Tracing: OpenTelemetry span per dispatched request
//   - RateLimit: token bucket rate limiting
//   - CircuitBreaker: short-circuits dispatch while downstream keeps
//     failing
package middleware
