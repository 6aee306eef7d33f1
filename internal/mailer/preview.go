package mailer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shineum/gmail-hotkey-sender/internal/email"
)

// previewLimit is the number of body characters shown before truncation.
const previewLimit = 100

// Truncate returns s unchanged when it has at most previewLimit runes,
// otherwise the first previewLimit runes followed by "...".
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLimit {
		return s
	}
	return string(runes[:previewLimit]) + "..."
}

// WritePreview prints what is about to be sent or drafted.
func WritePreview(w io.Writer, req *email.Request) error {
	var b strings.Builder
	if req.IsDraft {
		fmt.Fprintf(&b, "Creating draft to: %s\n", req.To)
	} else {
		fmt.Fprintf(&b, "Sending email to: %s\n", req.To)
	}
	if len(req.Cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\n", strings.Join(req.Cc, ", "))
	}
	if len(req.Bcc) > 0 {
		fmt.Fprintf(&b, "Bcc: %s\n", strings.Join(req.Bcc, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "Body: %s\n", Truncate(req.Body))
	if req.HasHTML() {
		b.WriteString("HTML: yes\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
