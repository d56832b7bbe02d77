// Package ses delivers compiled envelopes through the AWS SES v2 API as raw
// messages.
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

	"github.com/zostay/postbox/compose"
	"github.com/zostay/postbox/transport"
)

// Options holds the configuration for creating a Transport.
type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string

	// ConfigurationSet, when set, names the SES configuration set to send
	// with.
	ConfigurationSet string
}

// SendEmailAPI is the interface for the SES v2 SendEmail operation.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Transport sends envelopes with the SES v2 SendEmail operation. The
// compiled document is passed through untouched as raw content, and the
// envelope recipients, BCC included, become the destination.
type Transport struct {
	client           SendEmailAPI
	configurationSet string
	logger           *slog.Logger
}

// New loads the AWS configuration and returns a Transport. Static
// credentials are used when both keys are set, otherwise the default
// credential chain applies.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Transport, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error

	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	t := NewWithClient(sesv2.NewFromConfig(awsCfg), logger)
	t.configurationSet = opts.ConfigurationSet
	return t, nil
}

// NewWithClient returns a Transport that sends through client.
func NewWithClient(client SendEmailAPI, logger *slog.Logger) *Transport {
	return &Transport{client: client, logger: logger}
}

// Name returns "ses".
func (t *Transport) Name() string { return "ses" }

// Deliver sends the envelope. SES makes a single attempt; retrying is up to
// the caller.
func (t *Transport) Deliver(ctx context.Context, env *compose.Envelope) error {
	if err := transport.Check(env); err != nil {
		return err
	}

	out, err := t.client.SendEmail(ctx, buildInput(env, t.configurationSet))
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("SES API error", "error", err)
		}
		return fmt.Errorf("ses send email: %w", err)
	}

	if t.logger != nil {
		t.logger.Debug("sent message",
			"messageID", aws.ToString(out.MessageId),
			"recipients", len(env.Recipients),
			"size", len(env.Document))
	}

	return nil
}

func buildInput(env *compose.Envelope, configurationSet string) *sesv2.SendEmailInput {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(transport.AddrSpec(env.Sender)),
		Destination: &types.Destination{
			ToAddresses: transport.AddrSpecs(env.Recipients),
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{
				Data: env.Document,
			},
		},
	}

	if configurationSet != "" {
		input.ConfigurationSetName = aws.String(configurationSet)
	}

	return input
}
