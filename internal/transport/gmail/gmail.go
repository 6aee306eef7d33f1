package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/shineum/gmail-hotkey-sender/internal/compose"
	"github.com/shineum/gmail-hotkey-sender/internal/email"
)

// DefaultBaseURL is the Gmail API v1 root.
const DefaultBaseURL = "https://gmail.googleapis.com/gmail/v1"

// requestTimeout bounds a single API call.
const requestTimeout = 30 * time.Second

// Config holds the configuration for creating a Gmail Transport.
type Config struct {
	// TokenSource supplies the OAuth2 bearer token.
	TokenSource oauth2.TokenSource
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
}

// Transport talks to the Gmail API on behalf of the authenticated user ("me").
type Transport struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

// New creates a new Gmail Transport with the given configuration.
func New(cfg Config) *Transport {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}

	return &Transport{
		baseURL:    baseURL,
		httpClient: client,
		tokens:     cfg.TokenSource,
	}
}

// Send delivers the message via users.messages.send.
func (t *Transport) Send(ctx context.Context, req *email.Request) error {
	raw, err := compose.Build("", req)
	if err != nil {
		return err
	}

	body := sendMessageRequest{Raw: base64.URLEncoding.EncodeToString(raw)}
	return t.post(ctx, t.baseURL+"/users/me/messages/send", body)
}

// CreateDraft stores the message via users.drafts.create.
func (t *Transport) CreateDraft(ctx context.Context, req *email.Request) error {
	raw, err := compose.Build("", req)
	if err != nil {
		return err
	}

	body := createDraftRequest{Message: sendMessageRequest{Raw: base64.URLEncoding.EncodeToString(raw)}}
	return t.post(ctx, t.baseURL+"/users/me/drafts", body)
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "gmail"
}

// post performs a single authenticated JSON POST.
func (t *Transport) post(ctx context.Context, url string, payload any) error {
	if t.tokens == nil {
		return fmt.Errorf("failed to get access token: no token source configured")
	}
	token, err := t.tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	bodyJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyJSON))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(req)

	slog.Debug("calling Gmail API", "url", url, "bytes", len(bodyJSON))

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Gmail API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	respBody, _ := io.ReadAll(resp.Body)

	var apiErr apiErrorResponse
	if jsonErr := json.Unmarshal(respBody, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
		return classifyError(resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message)
	}

	return classifyError(resp.StatusCode, "", string(respBody))
}
