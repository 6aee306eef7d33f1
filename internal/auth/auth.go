// Package auth provides the credential check performed before a message is
// sent. Implementations range from a stub that always refuses to an OAuth2
// token store for the Gmail API.
package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotImplemented is returned by Stub.
	ErrNotImplemented = errors.New("authentication not implemented")

	// ErrCredentials indicates the OAuth client credentials file is missing or invalid.
	ErrCredentials = errors.New("invalid oauth client credentials")

	// ErrTokenMissing indicates no stored token exists yet. The consent flow
	// that creates it runs outside this tool.
	ErrTokenMissing = errors.New("oauth token not found")

	// ErrTokenRefresh indicates the stored token could not be refreshed.
	ErrTokenRefresh = errors.New("failed to refresh oauth token")
)

// Credential describes the identity a transport will use.
type Credential struct {
	Provider    string
	AccessToken string
	// Expiry is zero for credentials that do not expire.
	Expiry time.Time
}

// Authenticator makes sure usable credentials exist before a send.
type Authenticator interface {
	EnsureValid(ctx context.Context) (*Credential, error)
}

// Stub refuses every request with ErrNotImplemented.
type Stub struct{}

// EnsureValid always fails.
func (Stub) EnsureValid(context.Context) (*Credential, error) {
	return nil, ErrNotImplemented
}

// Static accepts every request. It fronts transports that carry their own
// API key or password.
type Static struct {
	Provider string
}

// EnsureValid returns a credential naming the provider.
func (s Static) EnsureValid(context.Context) (*Credential, error) {
	return &Credential{Provider: s.Provider}, nil
}
