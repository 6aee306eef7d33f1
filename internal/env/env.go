// Package env abstracts the process environment so that filesystem locations
// and environment variables can be faked in tests.
package env

import (
	"errors"
	"os"
)

// Environment supplies the process-wide values the sender depends on.
type Environment interface {
	// HomeDir returns the current user's home directory.
	HomeDir() (string, error)

	// Getenv returns the value of the named environment variable, or "" if unset.
	Getenv(key string) string
}

// OS is the Environment backed by the real operating system.
type OS struct{}

// HomeDir returns os.UserHomeDir.
func (OS) HomeDir() (string, error) {
	return os.UserHomeDir()
}

// Getenv returns os.Getenv.
func (OS) Getenv(key string) string {
	return os.Getenv(key)
}

// ErrNoHome is returned by Fake when no home directory was configured.
var ErrNoHome = errors.New("home directory not set")

// Fake is an in-memory Environment for tests.
type Fake struct {
	Home string
	Vars map[string]string
}

// HomeDir returns f.Home, or ErrNoHome if it is empty.
func (f *Fake) HomeDir() (string, error) {
	if f.Home == "" {
		return "", ErrNoHome
	}
	return f.Home, nil
}

// Getenv looks the key up in f.Vars.
func (f *Fake) Getenv(key string) string {
	return f.Vars[key]
}
