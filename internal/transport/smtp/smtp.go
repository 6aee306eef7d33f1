// Package smtp implements a Transport that submits messages to an SMTP relay.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"

	jwemail "github.com/jordan-wright/email"

	"github.com/shineum/gmail-hotkey-sender/internal/compose"
	"github.com/shineum/gmail-hotkey-sender/internal/email"
	"github.com/shineum/gmail-hotkey-sender/internal/transport"
)

// implicitTLSPort is the submissions port that expects TLS from the first byte.
const implicitTLSPort = 465

// Config holds SMTP relay configuration.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// sendFunc delivers e to addr. Replaced in tests.
type sendFunc func(e *jwemail.Email, addr string, a smtp.Auth, tlsCfg *tls.Config) error

// Transport submits messages over SMTP.
type Transport struct {
	cfg  Config
	send sendFunc
}

// New creates an SMTP Transport. Port 465 uses implicit TLS, any other port
// upgrades with STARTTLS.
func New(cfg Config) *Transport {
	send := func(e *jwemail.Email, addr string, a smtp.Auth, tlsCfg *tls.Config) error {
		return e.SendWithStartTLS(addr, a, tlsCfg)
	}
	if cfg.Port == implicitTLSPort {
		send = func(e *jwemail.Email, addr string, a smtp.Auth, tlsCfg *tls.Config) error {
			return e.SendWithTLS(addr, a, tlsCfg)
		}
	}
	return &Transport{cfg: cfg, send: send}
}

// Send composes the message and submits it in a single attempt. ctx is
// checked before dialing; once the SMTP exchange has started it runs to
// completion because jordan-wright/email takes no context.
func (t *Transport) Send(ctx context.Context, req *email.Request) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("smtp: send cancelled: %w", err)
	}

	e := compose.NewEmail(t.cfg.Sender, req)
	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))

	slog.Debug("submitting message over SMTP", "addr", addr, "recipients", len(req.Recipients())+len(req.Cc)+len(req.Bcc))

	if err := t.send(e, addr, t.auth(), &tls.Config{ServerName: t.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
		return fmt.Errorf("smtp: failed to send email via %s: %w", addr, err)
	}
	return nil
}

// CreateDraft is not available over SMTP.
func (t *Transport) CreateDraft(context.Context, *email.Request) error {
	return fmt.Errorf("smtp: %w", transport.ErrDraftUnsupported)
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "smtp"
}

// auth returns PLAIN auth, or nil when the relay accepts unauthenticated mail.
func (t *Transport) auth() smtp.Auth {
	if t.cfg.Username == "" {
		return nil
	}
	return smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
}
