// Package stdout implements a Transport that prints messages instead of
// delivering them.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shineum/gmail-hotkey-sender/internal/compose"
	"github.com/shineum/gmail-hotkey-sender/internal/email"
)

// Transport prints messages to stdout in a human-readable format.
type Transport struct {
	// writer is the output destination, defaulting to os.Stdout.
	writer io.Writer
}

// New creates a new stdout Transport that writes to os.Stdout.
func New() *Transport {
	return &Transport{writer: os.Stdout}
}

// NewWithWriter creates a new stdout Transport that writes to the given writer.
// This is useful for testing.
func NewWithWriter(w io.Writer) *Transport {
	return &Transport{writer: w}
}

// Send prints the message. It fails only if the message cannot be composed
// or written.
func (t *Transport) Send(_ context.Context, req *email.Request) error {
	return t.print("send", req)
}

// CreateDraft prints the message marked as a draft.
func (t *Transport) CreateDraft(_ context.Context, req *email.Request) error {
	return t.print("draft", req)
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "stdout"
}

func (t *Transport) print(mode string, req *email.Request) error {
	raw, err := compose.Build("", req)
	if err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "Mode: %s\n", mode)
	fmt.Fprintf(&b, "To: %s\n", strings.Join(req.Recipients(), ", "))

	if len(req.Cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\n", strings.Join(req.Cc, ", "))
	}
	if len(req.Bcc) > 0 {
		fmt.Fprintf(&b, "Bcc: %s\n", strings.Join(req.Bcc, ", "))
	}

	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	b.WriteString("Body:\n")

	body := req.Body
	if body == "" {
		body = req.HTMLBody
	}
	b.WriteString(body + "\n")

	fmt.Fprintf(&b, "Size: %s\n", formatSize(len(raw)))
	b.WriteString("========================================\n")

	if _, err := fmt.Fprint(t.writer, b.String()); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// formatSize formats a byte count into a human-readable string.
func formatSize(bytes int) string {
	const (
		kb = 1024
		mb = kb * 1024
	)

	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
