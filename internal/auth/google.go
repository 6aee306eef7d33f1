package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Gmail API scopes needed to send messages and create drafts.
const (
	GmailSendScope    = "https://www.googleapis.com/auth/gmail.send"
	GmailComposeScope = "https://www.googleapis.com/auth/gmail.compose"
)

// GmailScopes returns the scopes requested for the Gmail transport.
func GmailScopes() []string {
	return []string{GmailSendScope, GmailComposeScope}
}

// GoogleConfig holds the configuration for creating a Google authenticator.
type GoogleConfig struct {
	// CredentialsFile is the OAuth client JSON downloaded from Google Cloud.
	CredentialsFile string
	// TokenFile holds the user's token as JSON and is rewritten on refresh.
	TokenFile string
	// Scopes defaults to GmailScopes.
	Scopes []string
	// HTTPClient is used for token refreshes when set.
	HTTPClient *http.Client
}

// Google loads a stored OAuth2 token, refreshes it when expired and writes
// the refreshed token back to disk.
type Google struct {
	credentialsFile string
	tokenFile       string
	scopes          []string
	httpClient      *http.Client

	mu     sync.Mutex
	source oauth2.TokenSource
	saved  string
}

// NewGoogle creates a Google authenticator. Files are read lazily on first use.
func NewGoogle(cfg GoogleConfig) *Google {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = GmailScopes()
	}
	return &Google{
		credentialsFile: cfg.CredentialsFile,
		tokenFile:       cfg.TokenFile,
		scopes:          scopes,
		httpClient:      cfg.HTTPClient,
	}
}

// EnsureValid returns a non-expired access token, refreshing it if needed.
func (g *Google) EnsureValid(ctx context.Context) (*Credential, error) {
	tok, err := g.token(ctx)
	if err != nil {
		return nil, err
	}
	return &Credential{
		Provider:    "google",
		AccessToken: tok.AccessToken,
		Expiry:      tok.Expiry,
	}, nil
}

// TokenSource exposes the same token store to transports that attach the
// bearer token themselves.
func (g *Google) TokenSource(ctx context.Context) oauth2.TokenSource {
	return tokenSourceFunc(func() (*oauth2.Token, error) {
		return g.token(ctx)
	})
}

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) {
	return f()
}

// token returns a valid token. This method is safe for concurrent use.
func (g *Google) token(ctx context.Context) (*oauth2.Token, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.source == nil {
		if err := g.init(ctx); err != nil {
			return nil, err
		}
	}

	tok, err := g.source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenRefresh, err)
	}

	if tok.AccessToken != g.saved {
		if err := writeToken(g.tokenFile, tok); err != nil {
			slog.Warn("failed to save refreshed token", "path", g.tokenFile, "error", err)
		} else {
			slog.Debug("saved refreshed token", "path", g.tokenFile, "expiry", tok.Expiry)
			g.saved = tok.AccessToken
		}
	}

	return tok, nil
}

// init reads the client credentials and stored token. The caller must hold g.mu.
func (g *Google) init(ctx context.Context) error {
	data, err := os.ReadFile(g.credentialsFile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	oauthCfg, err := google.ConfigFromJSON(data, g.scopes...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	tok, err := readToken(g.tokenFile)
	if err != nil {
		return err
	}

	if g.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	}

	g.source = oauthCfg.TokenSource(ctx, tok)
	g.saved = tok.AccessToken
	return nil
}

func readToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTokenMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, fmt.Errorf("%w: %s has no access or refresh token", ErrTokenMissing, path)
	}
	return &tok, nil
}

func writeToken(path string, tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
