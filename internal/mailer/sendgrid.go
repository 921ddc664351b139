package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"creative-evaluator-backend/internal/logging"
	"creative-evaluator-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// SendGridClient sends mail through the SendGrid v3 Mail Send API.
type SendGridClient struct {
	baseURL    string
	apiKey     string
	from       Sender
	httpClient *http.Client
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridPersonalization struct {
	To      []sendGridAddress `json:"to"`
	Subject string            `json:"subject"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Content          []sendGridContent         `json:"content"`
}

func NewSendGridClient(baseURL, apiKey string, from Sender) *SendGridClient {
	return &SendGridClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *SendGridClient) Configured() error {
	if s.apiKey == "" {
		return fmt.Errorf("%w: SendGrid API key not configured", models.ErrNotConfigured)
	}
	return nil
}

func (s *SendGridClient) Send(ctx context.Context, msg *Message) error {
	if err := s.Configured(); err != nil {
		return err
	}

	payload := sendGridRequest{
		Personalizations: []sendGridPersonalization{{
			To:      []sendGridAddress{{Email: msg.To}},
			Subject: msg.Subject,
		}},
		From:    sendGridAddress{Email: s.from.Email, Name: s.from.Name},
		Content: []sendGridContent{{Type: "text/html", Value: msg.HTML}},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/mail/send", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return &SendError{Status: resp.StatusCode, Body: "Unable to parse error"}
		}
		return &SendError{Status: resp.StatusCode, Body: string(body)}
	}

	log.Debug().
		Str("to", logging.RedactEmail(msg.To)).
		Str("message_id", resp.Header.Get("X-Message-Id")).
		Msg("SendGrid message accepted")
	return nil
}
