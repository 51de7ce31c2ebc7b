package notification

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/pkg/logger"
)

const charset = "UTF-8"

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

var loadAWSConfig = func(ctx context.Context, region string) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
}

// SESNotifier sends email through Amazon SES
type SESNotifier struct {
	client  sesAPI
	sender  string
	timeout time.Duration
}

// NewSESNotifier builds an SES client from the default AWS credential chain
func NewSESNotifier(ctx context.Context, region, sender string, timeout time.Duration) (*SESNotifier, error) {
	cfg, err := loadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return &SESNotifier{client: ses.NewFromConfig(cfg), sender: sender, timeout: timeout}, nil
}

func (n *SESNotifier) Send(ctx context.Context, email gateways.Email) error {
	if len(email.To) == 0 {
		return errors.New("email has no recipients")
	}
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	body := &types.Body{}
	if email.Text != "" {
		body.Text = &types.Content{Charset: aws.String(charset), Data: aws.String(email.Text)}
	}
	if email.HTML != "" {
		body.Html = &types.Content{Charset: aws.String(charset), Data: aws.String(email.HTML)}
	}

	out, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(n.sender),
		Destination: &types.Destination{ToAddresses: email.To},
		Message: &types.Message{
			Subject: &types.Content{Charset: aws.String(charset), Data: aws.String(email.Subject)},
			Body:    body,
		},
	})
	if err != nil {
		return err
	}
	logger.Debug(ctx, "email sent", zap.String("message_id", aws.ToString(out.MessageId)), zap.Int("recipients", len(email.To)))
	return nil
}

// LogNotifier writes emails to the log instead of sending them
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Send(ctx context.Context, email gateways.Email) error {
	logger.Info(ctx, "email (not sent, mail disabled)",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("text", email.Text),
	)
	return nil
}
