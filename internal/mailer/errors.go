package mailer

import "errors"

var (
	// ErrRateLimited is returned when the limiter refuses a send.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNilRequest is returned when Dispatch is called without a request.
	ErrNilRequest = errors.New("nil request")
)
