package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventboard/internal/domain"
)

const (
	ProviderSES  = "ses"
	ProviderNoop = "noop"
)

// SESConfig holds the AWS settings of the SES provider.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// MailerConfig selects and configures the moderation mail provider.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewMailer returns the Mailer named by config.Provider. An empty or unknown
// provider yields a mailer that only logs.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case ProviderSES:
		if config.SES.Region == "" || config.FromAddress == "" {
			return nil, fmt.Errorf("ses mailer requires a region and a from address")
		}
		from := mail.Address{Name: config.FromName, Address: config.FromAddress}
		return &sesMailer{
			client: newSESClient(config.SES),
			source: from.String(),
			logger: logger,
		}, nil
	case ProviderNoop, "":
	default:
		logger.Warn("unknown mail provider, moderation mail disabled", "provider", config.Provider)
	}
	return &noopMailer{logger: logger}, nil
}

func newSESClient(cfg SESConfig) *ses.Client {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	return ses.NewFromConfig(aws.Config{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(creds),
	})
}

// sesAPI is the part of *ses.Client the mailer calls.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailer struct {
	client sesAPI
	source string
	logger *slog.Logger
}

func (m *sesMailer) Send(ctx context.Context, to, subject, html, text string) error {
	out, err := m.client.SendEmail(ctx, m.message(to, subject, html, text))
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", to, err)
	}
	m.logger.InfoContext(ctx, "moderation mail sent", "to", to, "message_id", aws.ToString(out.MessageId))
	return nil
}

// message leaves out the empty body parts; SES needs at least one.
func (m *sesMailer) message(to, subject, html, text string) *ses.SendEmailInput {
	body := &types.Body{}
	if html != "" {
		body.Html = utf8(html)
	}
	if text != "" {
		body.Text = utf8(text)
	}
	return &ses.SendEmailInput{
		Source:      aws.String(m.source),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message:     &types.Message{Subject: utf8(subject), Body: body},
	}
}

func utf8(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, to, subject, html, text string) error {
	n.logger.DebugContext(ctx, "moderation mail skipped", "to", to, "subject", subject)
	return nil
}
