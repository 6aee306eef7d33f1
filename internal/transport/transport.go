// Package transport defines the interface for mail delivery backends.
package transport

import (
	"context"
	"errors"

	"github.com/shineum/gmail-hotkey-sender/internal/email"
)

var (
	// ErrNotImplemented is returned by the stub transport's Send.
	ErrNotImplemented = errors.New("mail transport not implemented")

	// ErrDraftUnsupported is returned by providers without a drafts API.
	ErrDraftUnsupported = errors.New("provider does not support drafts")
)

// Transport is the interface that mail delivery backends must implement.
// Each call makes a single attempt; there are no retries.
type Transport interface {
	// Send delivers the request to its recipients.
	Send(ctx context.Context, req *email.Request) error

	// CreateDraft stores the request as an unsent draft.
	CreateDraft(ctx context.Context, req *email.Request) error

	// Name returns the human-readable name of this transport.
	Name() string
}

// Stub stands in until a real provider is configured. Send always fails and
// CreateDraft always succeeds without contacting anything.
type Stub struct{}

// Send returns ErrNotImplemented.
func (Stub) Send(context.Context, *email.Request) error {
	return ErrNotImplemented
}

// CreateDraft does nothing and returns nil.
func (Stub) CreateDraft(context.Context, *email.Request) error {
	return nil
}

// Name returns the transport name.
func (Stub) Name() string {
	return "stub"
}
