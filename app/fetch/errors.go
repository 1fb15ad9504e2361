package fetch

import (
	"errors"
	"fmt"
)

// ErrTimeout indicates the request exceeded the configured timeout. Timeouts
// are terminal for the venue; the run moves on.
var ErrTimeout = errors.New("request timed out")

// ErrBlocked indicates an anti-bot challenge page was served instead of
// content. Retrying an active challenge with the same approach is futile, so
// this is never retried.
var ErrBlocked = errors.New("blocked by anti-bot challenge")

// StatusError is returned for non-2xx responses. 4xx/5xx from tournament
// listing sites is rarely transient within a run, so it is not retried.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}
