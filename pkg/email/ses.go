package email

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"flows-notify/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESProvider implements Provider for AWS SES
type SESProvider struct {
	config *config.EmailConfig
	client *ses.Client
}

// NewSESProvider creates a new AWS SES email provider
func NewSESProvider(ctx context.Context, cfg *config.EmailConfig) (*SESProvider, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.SES.Region),
	}

	// static credentials when configured, otherwise the default chain
	if cfg.SES.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &SESProvider{
		config: cfg,
		client: ses.NewFromConfig(awsCfg),
	}, nil
}

// SendEmail sends an email using AWS SES and returns the SES message id
func (p *SESProvider) SendEmail(ctx context.Context, msg *Message) (string, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(fmt.Sprintf("%s <%s>", p.config.FromName, p.config.FromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if msg.HTML != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(msg.HTML),
			Charset: aws.String("UTF-8"),
		}
	}
	if msg.Text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(msg.Text),
			Charset: aws.String("UTF-8"),
		}
	}

	if p.config.SES.ConfigurationSet != "" {
		input.ConfigurationSetName = aws.String(p.config.SES.ConfigurationSet)
	}

	// metadata travels as SES message tags
	for key, value := range msg.Metadata {
		input.Tags = append(input.Tags, types.MessageTag{
			Name:  aws.String(sanitizeTag(key)),
			Value: aws.String(sanitizeTag(value)),
		})
	}

	out, err := p.client.SendEmail(ctx, input)
	if err != nil {
		return "", categorizeSESError(err)
	}

	return aws.ToString(out.MessageId), nil
}

// ValidateProvider validates the SES configuration
func (p *SESProvider) ValidateProvider(ctx context.Context) error {
	if p.config.SES.Region == "" {
		return &ValidationError{Field: "region", Reason: "AWS region is required"}
	}
	if p.config.FromEmail == "" {
		return &ValidationError{Field: "from_email", Reason: "SES from email is required"}
	}
	if p.config.FromName == "" {
		log.Println("Warning: SES from name is not set, using default")
		p.config.FromName = "Thepia Flows"
	}
	return nil
}

// categorizeSESError maps SES failures onto the delivery error taxonomy
func categorizeSESError(err error) *DeliveryError {
	var rejected *types.MessageRejected
	if errors.As(err, &rejected) {
		return newDeliveryError(DeliveryRejected, "email address rejected by AWS SES", err)
	}

	var unverified *types.MailFromDomainNotVerifiedException
	if errors.As(err, &unverified) {
		return newDeliveryError(DeliveryDomainUnverified, "sender domain not verified in AWS SES", err)
	}

	var badConfigSet *types.ConfigurationSetDoesNotExistException
	if errors.As(err, &badConfigSet) {
		return newDeliveryError(DeliveryConfig, "AWS SES configuration error", err)
	}

	return newDeliveryError(DeliveryFailed, "failed to send email", err)
}

// SES tag names and values only allow a restricted character set
var tagPattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeTag(s string) string {
	return tagPattern.ReplaceAllString(s, "_")
}
