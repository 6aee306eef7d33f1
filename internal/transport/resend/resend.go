// Package resend implements a Transport that sends messages via the Resend API.
package resend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v3"

	"github.com/shineum/gmail-hotkey-sender/internal/email"
	"github.com/shineum/gmail-hotkey-sender/internal/transport"
)

// Config holds Resend configuration.
type Config struct {
	APIKey string
	Sender string
}

// EmailsAPI is the subset of the Resend emails service used here.
// Used for testing with mock implementations.
type EmailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Transport sends messages through Resend.
type Transport struct {
	sender string
	emails EmailsAPI
}

// New creates a Resend Transport.
func New(cfg Config) *Transport {
	return &Transport{
		sender: cfg.Sender,
		emails: resend.NewClient(cfg.APIKey).Emails,
	}
}

// NewWithClient creates a Transport with a custom emails service, used for testing.
func NewWithClient(sender string, emails EmailsAPI) *Transport {
	return &Transport{sender: sender, emails: emails}
}

// Send delivers the message with a single API call.
func (t *Transport) Send(ctx context.Context, req *email.Request) error {
	resp, err := t.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    t.sender,
		To:      req.Recipients(),
		Subject: req.Subject,
		Html:    req.HTMLBody,
		Text:    req.Body,
		Cc:      req.Cc,
		Bcc:     req.Bcc,
	})
	if err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	if resp != nil {
		slog.Debug("resend accepted message", "id", resp.Id)
	}
	return nil
}

// CreateDraft is not available on Resend.
func (t *Transport) CreateDraft(context.Context, *email.Request) error {
	return fmt.Errorf("resend: %w", transport.ErrDraftUnsupported)
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "resend"
}
