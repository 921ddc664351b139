package mailer

import (
	"context"
	"fmt"

	"creative-evaluator-backend/internal/config"
	"creative-evaluator-backend/internal/models"
)

// Message is a single HTML email to one recipient.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers transactional email. Configured reports a missing
// credential so callers can fail before attempting any send.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
	Configured() error
}

// Sender identifies the From address used by every provider.
type Sender struct {
	Email string
	Name  string
}

// SendError is a non-success response from the email provider.
type SendError struct {
	Status int
	Body   string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("Status %d: %s", e.Status, e.Body)
}

func (e *SendError) Unwrap() error {
	return models.ErrUpstream
}

// New returns the mailer selected by EMAIL_PROVIDER.
func New(ctx context.Context, cfg *config.Config) (Mailer, error) {
	from := Sender{Email: cfg.EmailFromEmail, Name: cfg.EmailFromName}
	switch cfg.EmailProvider {
	case "sendgrid", "":
		return NewSendGridClient(cfg.SendGridBaseURL, cfg.SendGridAPIKey, from), nil
	case "ses":
		return NewSESClient(ctx, cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretKey, from)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}
