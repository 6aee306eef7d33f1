// Package audit appends one line per successfully sent email to a local log.
package audit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	logDirName  = "logs"
	logFileName = "sent_emails.log"

	timestampLayout = "2006-01-02 15:04:05"
)

// ErrWrite wraps every failure to create or append to the audit log.
var ErrWrite = errors.New("failed to write audit log")

// Logger writes entries to <appDir>/logs/sent_emails.log.
type Logger struct {
	dir string
	now func() time.Time
}

// New creates a Logger rooted at appDir (usually ~/.gmail-hotkey-sender).
func New(appDir string) *Logger {
	return &Logger{
		dir: filepath.Join(appDir, logDirName),
		now: time.Now,
	}
}

// NewWithClock creates a Logger with a custom time source, used for testing.
func NewWithClock(appDir string, now func() time.Time) *Logger {
	l := New(appDir)
	l.now = now
	return l
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return filepath.Join(l.dir, logFileName)
}

// Record appends "<UTC timestamp> | To: <to> | Subject: <subject>".
// The body is accepted for symmetry with the send call and never written.
func (l *Logger) Record(to, subject, _ string) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create log directory: %v", ErrWrite, err)
	}

	f, err := os.OpenFile(l.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open log file: %v", ErrWrite, err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatEntry(l.now(), to, subject)); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// FormatEntry renders a single newline-terminated log line.
func FormatEntry(ts time.Time, to, subject string) string {
	return fmt.Sprintf("%s | To: %s | Subject: %s\n", ts.UTC().Format(timestampLayout), to, subject)
}
