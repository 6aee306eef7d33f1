// Package cli implements the gmail-sender command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shineum/gmail-hotkey-sender/internal/audit"
	"github.com/shineum/gmail-hotkey-sender/internal/config"
	"github.com/shineum/gmail-hotkey-sender/internal/env"
	"github.com/shineum/gmail-hotkey-sender/internal/mailer"
	"github.com/shineum/gmail-hotkey-sender/internal/ratelimit"
	"github.com/shineum/gmail-hotkey-sender/internal/request"
)

// Options carries the process environment. Zero fields fall back to the
// real OS, stdout, stderr and clock.
type Options struct {
	Env    env.Environment
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
}

func (o *Options) applyDefaults() {
	if o.Env == nil {
		o.Env = env.OS{}
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

type flags struct {
	fields     request.Fields
	configPath string
	verbose    bool
}

// Run executes the command with args (without the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, opts Options) int {
	opts.applyDefaults()

	cmd := newRootCommand(ctx, &opts)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(opts.Stderr, "Operation failed: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand(ctx context.Context, opts *Options) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "gmail-sender",
		Short: "Send or draft a Gmail email from the command line",
		Long: `gmail-sender sends a single email, or saves it as a draft, through the
configured mail provider. It is meant to be bound to a keyboard shortcut.`,
		Example: `  gmail-sender --to alice@example.com --subject "Test" --body "Hello"
  gmail-sender -t bob@example.com -s "Meeting" -b "Reminder" --draft`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(ctx, opts, f)
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)

	fl := cmd.Flags()
	fl.StringVarP(&f.fields.To, "to", "t", "", "recipient email address(es), comma-separated")
	fl.StringVarP(&f.fields.Subject, "subject", "s", "", "email subject")
	fl.StringVarP(&f.fields.Body, "body", "b", "", "email body")
	fl.StringVar(&f.fields.Cc, "cc", "", "CC recipient(s), comma-separated")
	fl.StringVar(&f.fields.Bcc, "bcc", "", "BCC recipient(s), comma-separated")
	fl.StringVar(&f.fields.HTML, "html", "", "HTML email body")
	fl.BoolVar(&f.fields.Draft, "draft", false, "create draft instead of sending")
	fl.StringVar(&f.configPath, "config", "", "path to config file (default ~/.gmail-hotkey-sender/config.json)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose output")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func run(ctx context.Context, opts *Options, f *flags) error {
	settings := config.LoadSettings(opts.Env)

	level := settings.Logging.Level
	if f.verbose {
		fmt.Fprintln(opts.Stdout, "Verbose mode enabled")
		level = "debug"
	}
	setupLogger(opts.Stderr, level)

	req, err := request.Build(f.fields)
	if err != nil {
		return err
	}

	cfgPath := f.configPath
	if cfgPath == "" {
		cfgPath, err = config.DefaultPath(opts.Env)
		if err != nil {
			return err
		}
	}

	res := config.Load(cfgPath)
	slog.Debug("configuration ready", "path", cfgPath, "status", res.Status)

	authn, tr, err := selectProvider(ctx, settings, cfgPath, res.Config, opts.Stdout)
	if err != nil {
		return err
	}

	o := mailer.New(mailer.Deps{
		Config:        res.Config,
		Authenticator: authn,
		Transport:     tr,
		Audit:         homeAudit{env: opts.Env, now: opts.Now},
		Limiter:       ratelimit.Advisory{},
		Out:           opts.Stdout,
	})
	if err := o.Dispatch(ctx, req); err != nil {
		return err
	}

	fmt.Fprintln(opts.Stdout, "Operation completed successfully")
	return nil
}

// homeAudit resolves the log directory under the home directory when a
// record is written, so drafts and unlogged sends never need a home.
type homeAudit struct {
	env env.Environment
	now func() time.Time
}

func (h homeAudit) Record(to, subject, body string) error {
	dir, err := config.AppDir(h.env)
	if err != nil {
		return fmt.Errorf("%w: %w", audit.ErrWrite, err)
	}
	return audit.NewWithClock(dir, h.now).Record(to, subject, body)
}

// setupLogger configures the global slog logger with text output on w and
// the specified log level.
func setupLogger(w io.Writer, level string) {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
