// internal/common/aws/ses.go
package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

var ErrMissingRecipient = errors.New("email recipient is required")

// SESService is the part of the SES client the mailer uses.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// LoadConfig resolves credentials from the default chain for region.
func LoadConfig(ctx context.Context, region string) (awssdk.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}

type Email struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
}

type SESClient struct {
	client SESService
	from   string
}

func NewSESClient(cfg awssdk.Config, from string) *SESClient {
	return NewSESClientWithService(ses.NewFromConfig(cfg), from)
}

func NewSESClientWithService(client SESService, from string) *SESClient {
	return &SESClient{client: client, from: from}
}

// Send delivers a plain-text email and returns the SES message id.
func (s *SESClient) Send(ctx context.Context, email Email) (string, error) {
	to := strings.TrimSpace(email.To)
	if to == "" {
		return "", ErrMissingRecipient
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(email.Subject), Charset: awssdk.String(charset)},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(email.Text), Charset: awssdk.String(charset)},
			},
		},
		Source: awssdk.String(s.from),
	}
	if r := strings.TrimSpace(email.ReplyTo); r != "" {
		input.ReplyToAddresses = []string{r}
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return "", fmt.Errorf("ses send email: %w", err)
	}
	return awssdk.ToString(out.MessageId), nil
}
