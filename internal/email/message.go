// Package email defines the outbound message request handled by the sender.
package email

import "strings"

// Request is a single send or draft request built from CLI input.
type Request struct {
	// To is one address or a comma-joined list, as typed by the user.
	To      string
	Subject string
	Body    string
	// Cc and Bcc are nil when the flag was absent or empty.
	Cc       []string
	Bcc      []string
	HTMLBody string
	IsDraft  bool
}

// Recipients returns the To field split on commas with blanks dropped.
func (r *Request) Recipients() []string {
	return SplitAddresses(r.To)
}

// HasHTML reports whether an HTML body was supplied.
func (r *Request) HasHTML() bool {
	return r.HTMLBody != ""
}

// SplitAddresses splits a comma-separated address list, trimming whitespace
// and dropping empty elements. It returns nil when nothing remains.
func SplitAddresses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
