// Package ses implements a Transport that sends messages via AWS SES v2.
package ses

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/shineum/gmail-hotkey-sender/internal/email"
	"github.com/shineum/gmail-hotkey-sender/internal/transport"
)

// Config holds the configuration for creating an SES Transport.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Sender          string
}

// Transport sends messages via the AWS SES v2 API.
type Transport struct {
	sender string
	client SendEmailAPI
}

// SendEmailAPI is the interface for the SES v2 SendEmail operation.
// Used for testing with mock implementations.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// New creates a new SES Transport with the given configuration.
// Static keys are used when both are set; otherwise the default AWS
// credential chain applies.
func New(ctx context.Context, cfg Config) (*Transport, error) {
	var opts []func(*awsconfig.LoadOptions) error

	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Transport{
		sender: cfg.Sender,
		client: sesv2.NewFromConfig(awsCfg),
	}, nil
}

// NewWithClient creates an SES Transport with a custom client, used for testing.
func NewWithClient(sender string, client SendEmailAPI) *Transport {
	return &Transport{
		sender: sender,
		client: client,
	}
}

// Send delivers the message with a single SendEmail call.
func (s *Transport) Send(ctx context.Context, req *email.Request) error {
	out, err := s.client.SendEmail(ctx, buildSimpleInput(s.sender, req))
	if err != nil {
		return fmt.Errorf("SES API request failed: %w", err)
	}

	slog.Debug("SES accepted message", "message_id", aws.ToString(out.MessageId))
	return nil
}

// CreateDraft is not available on SES.
func (s *Transport) CreateDraft(context.Context, *email.Request) error {
	return fmt.Errorf("ses: %w", transport.ErrDraftUnsupported)
}

// Name returns the transport name.
func (s *Transport) Name() string {
	return "ses"
}

// buildSimpleInput creates a SES SendEmailInput using simple content.
func buildSimpleInput(sender string, req *email.Request) *sesv2.SendEmailInput {
	body := &types.Body{}

	if req.HTMLBody != "" {
		body.Html = &types.Content{
			Data:    aws.String(req.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}
	if req.Body != "" || req.HTMLBody == "" {
		body.Text = &types.Content{
			Data:    aws.String(req.Body),
			Charset: aws.String("UTF-8"),
		}
	}

	dest := &types.Destination{
		ToAddresses:  req.Recipients(),
		CcAddresses:  req.Cc,
		BccAddresses: req.Bcc,
	}

	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(sender),
		Destination:      dest,
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(req.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: body,
			},
		},
	}
}
