package mailer

import (
	"context"
	"fmt"

	"creative-evaluator-backend/internal/logging"
	"creative-evaluator-backend/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"
)

// SESAPI is the subset of the SES v2 client used for sending.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESClient sends mail through AWS SES v2.
type SESClient struct {
	api  SESAPI
	from Sender
}

// NewSESClient loads AWS configuration for region. Static keys are used
// when both are set, otherwise the default credential chain applies.
func NewSESClient(ctx context.Context, region, accessKey, secretKey string, from Sender) (*SESClient, error) {
	if region == "" {
		region = "us-east-1"
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSESClientWithAPI(sesv2.NewFromConfig(cfg), from), nil
}

func NewSESClientWithAPI(api SESAPI, from Sender) *SESClient {
	return &SESClient{api: api, from: from}
}

func (s *SESClient) Configured() error {
	if s.api == nil {
		return fmt.Errorf("%w: SES client not initialized", models.ErrNotConfigured)
	}
	return nil
}

func (s *SESClient) Send(ctx context.Context, msg *Message) error {
	if err := s.Configured(); err != nil {
		return err
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.from.Name, s.from.Email)),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	result, err := s.api.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("%w: SES send failed: %v", models.ErrUpstream, err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	log.Debug().Str("to", logging.RedactEmail(msg.To)).Str("message_id", messageID).Msg("SES message accepted")
	return nil
}
