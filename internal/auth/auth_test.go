package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestStub_AlwaysFails(t *testing.T) {
	t.Parallel()

	cred, err := Stub{}.EnsureValid(context.Background())
	assert.Nil(t, cred)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestStatic_AlwaysSucceeds(t *testing.T) {
	t.Parallel()

	cred, err := Static{Provider: "ses"}.EnsureValid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ses", cred.Provider)
	assert.True(t, cred.Expiry.IsZero())
}

// writeClientCredentials writes an "installed" OAuth client file pointing at tokenURL.
func writeClientCredentials(t *testing.T, dir, tokenURL string) string {
	t.Helper()

	content := fmt.Sprintf(`{"installed":{
		"client_id":"client-id.apps.googleusercontent.com",
		"client_secret":"client-secret",
		"auth_uri":"https://accounts.google.com/o/oauth2/auth",
		"token_uri":%q,
		"redirect_uris":["http://localhost"]
	}}`, tokenURL)

	path := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeStoredToken(t *testing.T, dir string, tok *oauth2.Token) string {
	t.Helper()

	data, err := json.Marshal(tok)
	require.NoError(t, err)

	path := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func newTokenServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fresh-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogle_ValidTokenIsReused(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newTokenServer(t, &calls)
	dir := t.TempDir()

	g := NewGoogle(GoogleConfig{
		CredentialsFile: writeClientCredentials(t, dir, srv.URL),
		TokenFile: writeStoredToken(t, dir, &oauth2.Token{
			AccessToken:  "stored-token",
			TokenType:    "Bearer",
			RefreshToken: "refresh-1",
			Expiry:       time.Now().Add(time.Hour),
		}),
		HTTPClient: srv.Client(),
	})

	cred, err := g.EnsureValid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "google", cred.Provider)
	assert.Equal(t, "stored-token", cred.AccessToken)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGoogle_ExpiredTokenIsRefreshedAndSaved(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newTokenServer(t, &calls)
	dir := t.TempDir()

	tokenFile := writeStoredToken(t, dir, &oauth2.Token{
		AccessToken:  "old-token",
		TokenType:    "Bearer",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(-time.Hour),
	})
	g := NewGoogle(GoogleConfig{
		CredentialsFile: writeClientCredentials(t, dir, srv.URL),
		TokenFile:       tokenFile,
		HTTPClient:      srv.Client(),
	})

	cred, err := g.EnsureValid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", cred.AccessToken)
	assert.Equal(t, int32(1), calls.Load())

	data, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	var saved oauth2.Token
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, "fresh-token", saved.AccessToken)
	assert.Equal(t, "refresh-1", saved.RefreshToken)

	// The cached token serves the transport without another refresh.
	tok, err := g.TokenSource(context.Background()).Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", tok.AccessToken)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGoogle_MissingToken(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	g := NewGoogle(GoogleConfig{
		CredentialsFile: writeClientCredentials(t, dir, "http://127.0.0.1:1/token"),
		TokenFile:       filepath.Join(dir, "token.json"),
	})

	_, err := g.EnsureValid(context.Background())
	assert.True(t, errors.Is(err, ErrTokenMissing), "got %v", err)
}

func TestGoogle_MissingCredentials(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	g := NewGoogle(GoogleConfig{
		CredentialsFile: filepath.Join(dir, "credentials.json"),
		TokenFile:       filepath.Join(dir, "token.json"),
	})

	_, err := g.EnsureValid(context.Background())
	assert.True(t, errors.Is(err, ErrCredentials), "got %v", err)
}

func TestGoogle_InvalidCredentials(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nope":true}`), 0o600))

	g := NewGoogle(GoogleConfig{CredentialsFile: path, TokenFile: filepath.Join(dir, "token.json")})

	_, err := g.EnsureValid(context.Background())
	assert.True(t, errors.Is(err, ErrCredentials), "got %v", err)
}

func TestGoogle_RefreshFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	g := NewGoogle(GoogleConfig{
		CredentialsFile: writeClientCredentials(t, dir, srv.URL),
		TokenFile: writeStoredToken(t, dir, &oauth2.Token{
			AccessToken:  "old-token",
			RefreshToken: "revoked",
			Expiry:       time.Now().Add(-time.Hour),
		}),
		HTTPClient: srv.Client(),
	})

	_, err := g.EnsureValid(context.Background())
	assert.True(t, errors.Is(err, ErrTokenRefresh), "got %v", err)
}
