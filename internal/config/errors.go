package config

import "errors"

var (
	// ErrParse indicates the config file exists but is not valid JSON or YAML.
	// Load recovers from it by restoring defaults.
	ErrParse = errors.New("invalid config file")

	// ErrHomeDir indicates the user's home directory could not be determined.
	ErrHomeDir = errors.New("failed to get home directory")

	// ErrCreateDir indicates the config directory could not be created.
	ErrCreateDir = errors.New("failed to create config directory")
)
