package config

import (
	"strconv"
	"strings"

	"github.com/shineum/gmail-hotkey-sender/internal/env"
)

// defaultSMTPPort is the submission port used with STARTTLS.
const defaultSMTPPort = 587

// Settings holds runtime options taken from environment variables. They are
// never written to the config file.
type Settings struct {
	Provider string
	Logging  LoggingSettings
	Gmail    GmailSettings
	SES      SESSettings
	Resend   ResendSettings
	SMTP     SMTPSettings
}

// LoggingSettings holds logging configuration.
type LoggingSettings struct {
	Level string
}

// GmailSettings holds Gmail API overrides.
type GmailSettings struct {
	// APIURL replaces https://gmail.googleapis.com/gmail/v1 when set.
	APIURL string
}

// SESSettings holds AWS SES configuration.
type SESSettings struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Sender          string
}

// ResendSettings holds Resend API configuration.
type ResendSettings struct {
	APIKey string
	Sender string
}

// SMTPSettings holds SMTP submission configuration.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// LoadSettings returns the defaults overridden by any non-empty environment
// variables found in e.
func LoadSettings(e env.Environment) *Settings {
	s := &Settings{}
	s.applyDefaults()
	s.applyEnvVars(e)
	return s
}

// SESConfigured returns true if the SES region and sender are set.
func (s *Settings) SESConfigured() bool {
	return s.SES.Region != "" && s.SES.Sender != ""
}

// ResendConfigured returns true if the Resend API key and sender are set.
func (s *Settings) ResendConfigured() bool {
	return s.Resend.APIKey != "" && s.Resend.Sender != ""
}

// SMTPConfigured returns true if the SMTP host and sender are set.
func (s *Settings) SMTPConfigured() bool {
	return s.SMTP.Host != "" && s.SMTP.Sender != ""
}

func (s *Settings) applyDefaults() {
	s.Provider = "stub"
	s.Logging.Level = "warn"
	s.SMTP.Port = defaultSMTPPort
}

// applyEnvVars overrides settings with environment variable values.
// Only non-empty environment variables override existing values.
func (s *Settings) applyEnvVars(e env.Environment) {
	if v := e.Getenv("PROVIDER"); v != "" {
		s.Provider = strings.ToLower(v)
	}
	if v := e.Getenv("LOG_LEVEL"); v != "" {
		s.Logging.Level = strings.ToLower(v)
	}

	if v := e.Getenv("GMAIL_API_URL"); v != "" {
		s.Gmail.APIURL = strings.TrimRight(v, "/")
	}

	if v := e.Getenv("SES_REGION"); v != "" {
		s.SES.Region = v
	}
	if v := e.Getenv("SES_ACCESS_KEY_ID"); v != "" {
		s.SES.AccessKeyID = v
	}
	if v := e.Getenv("SES_SECRET_ACCESS_KEY"); v != "" {
		s.SES.SecretAccessKey = v
	}
	if v := e.Getenv("SES_SENDER"); v != "" {
		s.SES.Sender = v
	}

	if v := e.Getenv("RESEND_API_KEY"); v != "" {
		s.Resend.APIKey = v
	}
	if v := e.Getenv("RESEND_FROM_EMAIL"); v != "" {
		s.Resend.Sender = v
	}

	if v := e.Getenv("SMTP_HOST"); v != "" {
		s.SMTP.Host = v
	}
	if v := e.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			s.SMTP.Port = port
		}
	}
	if v := e.Getenv("SMTP_USERNAME"); v != "" {
		s.SMTP.Username = v
	}
	if v := e.Getenv("SMTP_PASSWORD"); v != "" {
		s.SMTP.Password = v
	}
	if v := e.Getenv("SMTP_SENDER"); v != "" {
		s.SMTP.Sender = v
	}
}
