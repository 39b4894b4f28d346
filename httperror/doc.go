// Package httperror defines the error contract shared by the routing
// core and the dispatchables it runs.
//
// # Error Conventions
//
// This project follows a standardized error pattern across all packages:
//
//   - Sentinel errors (errors.New) for well-known, stable conditions
//     that callers check with errors.Is(). Example: ErrNotFound.
//   - Structured error types for context-rich errors that carry
//     additional fields (e.g., Error, TargetError). Each type
//     implements Error(), Unwrap() (if wrapping), and Is().
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without introducing a new type.
//
// Any error satisfying the StatusError interface is converted by
// router.Router into a response carrying that status code; all other
// errors propagate to the caller unconverted.
package httperror
