// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrAuthExpired  = errors.New("session expired")        // token present but the user fetch failed
	ErrFetchFailed  = errors.New("fetch failed")           // a collection load failed; previous state is retained
	ErrActionFailed = errors.New("action failed")          // a user-initiated mutation failed
	ErrInvalidInput = errors.New("invalid input provided") // caller-side validation failure
	ErrNoSession    = errors.New("no active session")      // operation requires an authenticated user
)

// IsError checks whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
