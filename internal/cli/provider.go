package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shineum/gmail-hotkey-sender/internal/auth"
	"github.com/shineum/gmail-hotkey-sender/internal/config"
	"github.com/shineum/gmail-hotkey-sender/internal/transport"
	"github.com/shineum/gmail-hotkey-sender/internal/transport/gmail"
	"github.com/shineum/gmail-hotkey-sender/internal/transport/resend"
	"github.com/shineum/gmail-hotkey-sender/internal/transport/ses"
	"github.com/shineum/gmail-hotkey-sender/internal/transport/smtp"
	"github.com/shineum/gmail-hotkey-sender/internal/transport/stdout"
)

var (
	// ErrUnknownProvider is returned for an unrecognized PROVIDER value.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrProviderConfig is returned when the selected provider lacks required settings.
	ErrProviderConfig = errors.New("provider is not configured")
)

// selectProvider chooses the authenticator and delivery backend from the
// PROVIDER setting. Relative credential paths resolve against the config
// file's directory.
func selectProvider(ctx context.Context, s *config.Settings, cfgPath string, cfg *config.Config, out io.Writer) (auth.Authenticator, transport.Transport, error) {
	switch s.Provider {
	case "stub", "":
		slog.Debug("using stub provider")
		return auth.Stub{}, transport.Stub{}, nil

	case "stdout":
		slog.Debug("using stdout provider")
		return auth.Static{Provider: "stdout"}, stdout.NewWithWriter(out), nil

	case "gmail":
		g := auth.NewGoogle(auth.GoogleConfig{
			CredentialsFile: config.ResolvePath(cfgPath, cfg.CredentialsFile),
			TokenFile:       config.ResolvePath(cfgPath, cfg.TokenFile),
		})
		slog.Debug("using Gmail API provider", "base_url", s.Gmail.APIURL)
		return g, gmail.New(gmail.Config{
			TokenSource: g.TokenSource(ctx),
			BaseURL:     s.Gmail.APIURL,
		}), nil

	case "ses":
		if !s.SESConfigured() {
			return nil, nil, fmt.Errorf("%w: ses requires SES_REGION and SES_SENDER", ErrProviderConfig)
		}
		slog.Debug("using AWS SES provider",
			"region", s.SES.Region,
			"sender", s.SES.Sender,
		)
		p, err := ses.New(ctx, ses.Config{
			Region:          s.SES.Region,
			AccessKeyID:     s.SES.AccessKeyID,
			SecretAccessKey: s.SES.SecretAccessKey,
			Sender:          s.SES.Sender,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create SES provider: %w", err)
		}
		return auth.Static{Provider: "ses"}, p, nil

	case "resend":
		if !s.ResendConfigured() {
			return nil, nil, fmt.Errorf("%w: resend requires RESEND_API_KEY and RESEND_FROM_EMAIL", ErrProviderConfig)
		}
		slog.Debug("using Resend provider", "sender", s.Resend.Sender)
		return auth.Static{Provider: "resend"}, resend.New(resend.Config{
			APIKey: s.Resend.APIKey,
			Sender: s.Resend.Sender,
		}), nil

	case "smtp":
		if !s.SMTPConfigured() {
			return nil, nil, fmt.Errorf("%w: smtp requires SMTP_HOST and SMTP_SENDER", ErrProviderConfig)
		}
		slog.Debug("using SMTP provider",
			"host", s.SMTP.Host,
			"port", s.SMTP.Port,
			"sender", s.SMTP.Sender,
		)
		return auth.Static{Provider: "smtp"}, smtp.New(smtp.Config{
			Host:     s.SMTP.Host,
			Port:     s.SMTP.Port,
			Username: s.SMTP.Username,
			Password: s.SMTP.Password,
			Sender:   s.SMTP.Sender,
		}), nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
	}
}
