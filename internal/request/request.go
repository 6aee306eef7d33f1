// Package request validates raw CLI values and turns them into an email.Request.
package request

import (
	"errors"
	"strings"

	"github.com/shineum/gmail-hotkey-sender/internal/email"
)

// ErrMissingRecipient is returned when no recipient was supplied.
var ErrMissingRecipient = errors.New("recipient is required")

// ValidationError reports which field failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Fields holds the raw flag values. Empty strings mean the flag was absent.
type Fields struct {
	To      string
	Subject string
	Body    string
	Cc      string
	Bcc     string
	HTML    string
	Draft   bool
}

// Build validates f and returns the request to dispatch.
// Subject and body are taken as given; config defaults are not applied here.
func Build(f Fields) (*email.Request, error) {
	to := strings.TrimSpace(f.To)
	if to == "" {
		return nil, &ValidationError{Field: "to", Err: ErrMissingRecipient}
	}

	return &email.Request{
		To:       to,
		Subject:  f.Subject,
		Body:     f.Body,
		Cc:       email.SplitAddresses(f.Cc),
		Bcc:      email.SplitAddresses(f.Bcc),
		HTMLBody: f.HTML,
		IsDraft:  f.Draft,
	}, nil
}
