package ses

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shineum/gmail-hotkey-sender/internal/email"
	"github.com/shineum/gmail-hotkey-sender/internal/transport"
)

// mockSESClient implements SendEmailAPI for testing.
type mockSESClient struct {
	sendFn    func(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
	callCount int
	lastInput *sesv2.SendEmailInput
}

func (m *mockSESClient) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	m.callCount++
	m.lastInput = params
	if m.sendFn != nil {
		return m.sendFn(ctx, params, optFns...)
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("test-message-id")}, nil
}

func TestName(t *testing.T) {
	t.Parallel()

	var p transport.Transport = NewWithClient("sender@example.com", &mockSESClient{})
	assert.Equal(t, "ses", p.Name())
}

func TestSend_SimpleTextEmail(t *testing.T) {
	t.Parallel()

	mock := &mockSESClient{}
	p := NewWithClient("sender@example.com", mock)

	req := &email.Request{
		To:      "to@example.com",
		Subject: "Test Subject",
		Body:    "Hello, World!",
	}
	require.NoError(t, p.Send(context.Background(), req))
	assert.Equal(t, 1, mock.callCount)

	input := mock.lastInput
	require.NotNil(t, input.Content.Simple)
	assert.Equal(t, "sender@example.com", aws.ToString(input.FromEmailAddress))
	assert.Equal(t, "Test Subject", aws.ToString(input.Content.Simple.Subject.Data))
	require.NotNil(t, input.Content.Simple.Body.Text)
	assert.Equal(t, "Hello, World!", aws.ToString(input.Content.Simple.Body.Text.Data))
	assert.Nil(t, input.Content.Simple.Body.Html)
}

func TestSend_SimpleHtmlEmail(t *testing.T) {
	t.Parallel()

	mock := &mockSESClient{}
	p := NewWithClient("sender@example.com", mock)

	req := &email.Request{
		To:       "to@example.com",
		Subject:  "HTML Test",
		Body:     "Plain text fallback",
		HTMLBody: "<h1>Hello</h1>",
	}
	require.NoError(t, p.Send(context.Background(), req))

	body := mock.lastInput.Content.Simple.Body
	require.NotNil(t, body.Html)
	require.NotNil(t, body.Text)
	assert.Equal(t, "<h1>Hello</h1>", aws.ToString(body.Html.Data))
	assert.Equal(t, "Plain text fallback", aws.ToString(body.Text.Data))
}

func TestSend_HtmlOnly(t *testing.T) {
	t.Parallel()

	mock := &mockSESClient{}
	p := NewWithClient("sender@example.com", mock)

	require.NoError(t, p.Send(context.Background(), &email.Request{To: "to@example.com", HTMLBody: "<p>x</p>"}))
	assert.Nil(t, mock.lastInput.Content.Simple.Body.Text, "no text body when only HTML is given")
}

func TestSend_WithRecipients(t *testing.T) {
	t.Parallel()

	mock := &mockSESClient{}
	p := NewWithClient("sender@example.com", mock)

	req := &email.Request{
		To:      "to1@example.com, to2@example.com",
		Cc:      []string{"cc@example.com"},
		Bcc:     []string{"bcc@example.com"},
		Subject: "Multi-recipient",
		Body:    "Hello",
	}
	require.NoError(t, p.Send(context.Background(), req))

	dest := mock.lastInput.Destination
	assert.Equal(t, []string{"to1@example.com", "to2@example.com"}, dest.ToAddresses)
	assert.Equal(t, []string{"cc@example.com"}, dest.CcAddresses)
	assert.Equal(t, []string{"bcc@example.com"}, dest.BccAddresses)
}

func TestSend_SingleAttemptOnError(t *testing.T) {
	t.Parallel()

	apiErr := errors.New("throttled")
	mock := &mockSESClient{
		sendFn: func(context.Context, *sesv2.SendEmailInput, ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
			return nil, apiErr
		},
	}
	p := NewWithClient("sender@example.com", mock)

	err := p.Send(context.Background(), &email.Request{To: "to@example.com", Body: "x"})
	assert.ErrorIs(t, err, apiErr)
	assert.Equal(t, 1, mock.callCount, "no retries")
}

func TestCreateDraft_Unsupported(t *testing.T) {
	t.Parallel()

	mock := &mockSESClient{}
	p := NewWithClient("sender@example.com", mock)

	err := p.CreateDraft(context.Background(), &email.Request{To: "to@example.com"})
	assert.ErrorIs(t, err, transport.ErrDraftUnsupported)
	assert.Zero(t, mock.callCount)
}
