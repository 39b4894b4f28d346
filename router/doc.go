// Package router provides the route table and dispatch orchestration
// for the middleware core.
//
// Routes are registered with a target string in a small mini-language
// and classified once, at registration time:
//
//   - exact path:  /cats/
//   - prefix:      /cats/*
//   - template:    /cats/{id}
//   - regex:       ~/cats/([0-9]+)~  (delimited pattern)
//
// Matching tries the static index first (O(1)), then the longest
// registered prefix, then template/regex routes in registration order.
// Template and regex matchers are compiled once and reused for every
// request.
//
// # Dispatch pipeline
//
// Router.Process runs a fixed sequence of stages around the route
// table: pre-route hooks, route dispatch, an optional status handler
// for the resulting status code, post-route hooks, and response
// preparation hooks. An error satisfying httperror.StatusError raised
// during route dispatch is converted, exactly once, into a response
// with that status; all other errors propagate to the caller.
//
// # Concurrency
//
// Registration is not synchronized with matching. Register all routes
// and hooks at startup; afterwards the tables are read-only and safe
// for concurrent Process calls.
package router
