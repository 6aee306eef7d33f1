// Package mailer coordinates a single send or draft: console preview,
// credential check, transport call and audit record.
package mailer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/shineum/gmail-hotkey-sender/internal/auth"
	"github.com/shineum/gmail-hotkey-sender/internal/config"
	"github.com/shineum/gmail-hotkey-sender/internal/email"
	"github.com/shineum/gmail-hotkey-sender/internal/ratelimit"
	"github.com/shineum/gmail-hotkey-sender/internal/transport"
)

// Recorder stores a line for each successfully sent email.
type Recorder interface {
	Record(to, subject, body string) error
}

// Deps holds the collaborators of an Orchestrator.
type Deps struct {
	Config        *config.Config
	Authenticator auth.Authenticator
	Transport     transport.Transport
	Audit         Recorder
	Limiter       ratelimit.Limiter
	// Out receives the console preview. Defaults to io.Discard.
	Out io.Writer
}

// Orchestrator runs the dispatch state machine.
type Orchestrator struct {
	deps Deps

	mu    sync.Mutex
	state State
}

// New creates an Orchestrator. A nil Config means config.Default() and a nil
// Limiter means ratelimit.Advisory.
func New(deps Deps) *Orchestrator {
	if deps.Config == nil {
		deps.Config = config.Default()
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.Advisory{}
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	return &Orchestrator{deps: deps, state: StateIdle}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Dispatch previews req and then either creates a draft or sends it.
// Drafts skip authentication and are never logged. Sends are logged only
// after the transport succeeds and when log_sent_emails is enabled; a log
// failure fails the dispatch.
func (o *Orchestrator) Dispatch(ctx context.Context, req *email.Request) error {
	if req == nil {
		o.setState(StateFailed)
		return ErrNilRequest
	}

	if err := WritePreview(o.deps.Out, req); err != nil {
		slog.Warn("failed to write preview", "error", err)
	}

	var err error
	if req.IsDraft {
		err = o.draft(ctx, req)
	} else {
		err = o.send(ctx, req)
	}
	if err != nil {
		o.setState(StateFailed)
		return err
	}

	o.setState(StateSucceeded)
	return nil
}

func (o *Orchestrator) draft(ctx context.Context, req *email.Request) error {
	o.setState(StateDispatching)
	slog.Debug("creating draft", "transport", o.deps.Transport.Name(), "to", req.To)

	if err := o.deps.Transport.CreateDraft(ctx, req); err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	return nil
}

func (o *Orchestrator) send(ctx context.Context, req *email.Request) error {
	if !o.deps.Limiter.CheckAndRecord(o.deps.Config.RateLimit) {
		return fmt.Errorf("%w: limit %d", ErrRateLimited, o.deps.Config.RateLimit)
	}

	o.setState(StateAuthenticating)
	cred, err := o.deps.Authenticator.EnsureValid(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	slog.Debug("credentials ready", "provider", cred.Provider)

	o.setState(StateDispatching)
	slog.Debug("sending email", "transport", o.deps.Transport.Name(), "to", req.To)
	if err := o.deps.Transport.Send(ctx, req); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if !o.deps.Config.LogSentEmails || o.deps.Audit == nil {
		return nil
	}

	o.setState(StateLogging)
	if err := o.deps.Audit.Record(req.To, req.Subject, req.Body); err != nil {
		return fmt.Errorf("email sent but %w", err)
	}
	return nil
}
