// Package observability provides structured logging for the routing
// core and its shipped middleware.
//
// The Logger interface decouples the core from the underlying logging
// library; the default implementation is backed by go.uber.org/zap.
// Components that are not given a logger use NopLogger, so logging is
// always optional.
package observability
