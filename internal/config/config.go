// Package config provides the persisted, self-healing configuration file and
// the environment-driven runtime settings for the sender.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shineum/gmail-hotkey-sender/internal/env"
)

const (
	// appDirName is the per-user directory holding config and logs.
	appDirName = ".gmail-hotkey-sender"

	configFileName = "config.json"

	// defaultRateLimit is emails per day. Not enforced.
	defaultRateLimit = 100
)

// Config holds the persisted configuration.
type Config struct {
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
	TokenFile       string `json:"token_file" yaml:"token_file"`
	DefaultSubject  string `json:"default_subject" yaml:"default_subject"`
	DefaultBody     string `json:"default_body" yaml:"default_body"`
	RateLimit       uint   `json:"rate_limit" yaml:"rate_limit"`
	LogSentEmails   bool   `json:"log_sent_emails" yaml:"log_sent_emails"`
}

// Default returns the configuration written on first run or after a failed parse.
func Default() *Config {
	return &Config{
		CredentialsFile: "credentials.json",
		TokenFile:       "token.json",
		DefaultSubject:  "",
		DefaultBody:     "",
		RateLimit:       defaultRateLimit,
		LogSentEmails:   true,
	}
}

// Status tells how a Config was obtained.
type Status int

const (
	// StatusLoaded means the file existed and parsed.
	StatusLoaded Status = iota
	// StatusHealed means defaults replaced a missing or corrupt file.
	StatusHealed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusHealed:
		return "healed"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of Load.
type LoadResult struct {
	Config *Config
	Status Status
	// Cause is the read or parse error that triggered healing. Nil when loaded.
	Cause error
	// SaveErr is set when the healed defaults could not be persisted.
	SaveErr error
}

// Load reads the configuration at path. A missing, unreadable or unparsable
// file is replaced with Default() and persisted; that is reported through
// LoadResult.Status rather than as an error.
func Load(path string) *LoadResult {
	cfg, err := read(path)
	if err == nil {
		return &LoadResult{Config: cfg, Status: StatusLoaded}
	}

	if errors.Is(err, ErrParse) {
		slog.Warn("invalid config file, restoring defaults", "path", path, "error", err)
	} else {
		slog.Debug("config file not readable, writing defaults", "path", path, "error", err)
	}

	res := &LoadResult{Config: Default(), Status: StatusHealed, Cause: err}
	if saveErr := Save(path, res.Config); saveErr != nil {
		slog.Warn("failed to save config", "path", path, "error", saveErr)
		res.SaveErr = saveErr
	}
	return res
}

// configKeys lists the keys every config file must carry.
var configKeys = []string{
	"credentials_file",
	"token_file",
	"default_subject",
	"default_body",
	"rate_limit",
	"log_sent_emails",
}

// read parses path strictly: the document must be an object holding every key
// in configKeys with a non-null value. Anything else is ErrParse.
func read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := checkKeys(path, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &cfg, nil
}

// checkKeys decodes data into a generic object and verifies that every
// required key is present and non-null.
func checkKeys(path string, data []byte) error {
	set := make(map[string]bool, len(configKeys))

	if isYAML(path) {
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return err
		}
		if m == nil {
			return errors.New("empty document")
		}
		for k, v := range m {
			set[k] = v != nil
		}
	} else {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		if m == nil {
			return errors.New("document is null")
		}
		for k, v := range m {
			set[k] = string(v) != "null"
		}
	}

	for _, k := range configKeys {
		if !set[k] {
			return fmt.Errorf("missing or null key %q", k)
		}
	}
	return nil
}

// Save writes cfg to path in pretty-printed form. The data goes to a temporary
// file in the same directory first and is renamed over path, so a previous
// valid file survives a failed write.
func Save(path string, cfg *Config) error {
	data, err := encode(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set config file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

func encode(path string, cfg *Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(cfg)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// AppDir returns <home>/.gmail-hotkey-sender without creating it.
func AppDir(e env.Environment) (string, error) {
	home, err := e.HomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHomeDir, err)
	}
	if home == "" {
		return "", ErrHomeDir
	}
	return filepath.Join(home, appDirName), nil
}

// DefaultPath returns <home>/.gmail-hotkey-sender/config.json, creating the
// directory if needed. Both failures are fatal to the caller.
func DefaultPath(e env.Environment) (string, error) {
	dir, err := AppDir(e)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrCreateDir, dir, err)
	}
	return filepath.Join(dir, configFileName), nil
}

// ResolvePath makes p absolute relative to the directory of configPath.
// Absolute paths are returned as is.
func ResolvePath(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
