// Package compose renders an email.Request as an RFC 5322 message for
// transports that submit raw MIME.
package compose

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	jwemail "github.com/jordan-wright/email"
	"github.com/k3a/html2text"

	"github.com/shineum/gmail-hotkey-sender/internal/email"
)

// messageIDDomain is the right-hand side of generated Message-Id headers.
const messageIDDomain = "gmail-hotkey-sender"

// NewEmail converts req into a jordan-wright Email. From may be empty when the
// provider fills it in (Gmail does).
func NewEmail(from string, req *email.Request) *jwemail.Email {
	e := jwemail.NewEmail()
	e.From = from
	e.To = req.Recipients()
	e.Cc = req.Cc
	e.Bcc = req.Bcc
	e.Subject = req.Subject

	text := req.Body
	if text == "" && req.HasHTML() {
		text = PlainText(req.HTMLBody)
	}
	if text != "" {
		e.Text = []byte(text)
	}
	if req.HasHTML() {
		e.HTML = []byte(req.HTMLBody)
	}

	e.Headers.Set("Message-Id", fmt.Sprintf("<%s@%s>", uuid.NewString(), messageIDDomain))
	return e
}

// Build renders req as raw message bytes. Bcc is kept as a header so that API
// providers which take a raw message can route it; they strip it on delivery.
func Build(from string, req *email.Request) ([]byte, error) {
	e := NewEmail(from, req)
	if len(req.Bcc) > 0 {
		e.Headers.Set("Bcc", strings.Join(req.Bcc, ", "))
	}

	raw, err := e.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}
	return raw, nil
}

// PlainText converts HTML to text, collapsing runs of blank lines.
func PlainText(html string) string {
	if html == "" {
		return ""
	}

	lines := strings.Split(html2text.HTML2Text(html), "\n")
	result := make([]string, 0, len(lines))
	blankCount := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blankCount++
			// Allow max 2 consecutive blank lines
			if blankCount <= 2 {
				result = append(result, "")
			}
			continue
		}
		blankCount = 0
		result = append(result, line)
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
