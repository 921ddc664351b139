package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"creative-evaluator-backend/internal/logging"
	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/report"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrPartialDelivery means at least one send in a bulk request failed.
// Messages that were accepted are not recalled.
var ErrPartialDelivery = errors.New("bulk send failed")

const maxConcurrentSends = 16

// FeedbackItem is one creative's report with its reviewer comments.
type FeedbackItem struct {
	Result   models.ScoreResult
	Image    string
	Comments string
}

type Failure struct {
	Recipient string `json:"recipient"`
	Filename  string `json:"filename"`
	Detail    string `json:"detail"`
}

// BulkResult reports the outcome of every send in a fan-out.
type BulkResult struct {
	Attempted int       `json:"attempted"`
	Delivered int       `json:"delivered"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Notifier renders feedback reports and sends one email per recipient per
// creative.
type Notifier struct {
	mailer   Mailer
	renderer *report.Renderer
	now      func() time.Time
}

func NewNotifier(m Mailer, r *report.Renderer) *Notifier {
	return &Notifier{mailer: m, renderer: r, now: time.Now}
}

// WithClock overrides the report date source.
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now
	return n
}

// NormalizeRecipients trims addresses and drops blanks.
func NormalizeRecipients(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// SendFeedback renders every item, then sends all messages concurrently.
// Any failed send makes the call return ErrPartialDelivery alongside the
// result; delivered messages stay delivered.
func (n *Notifier) SendFeedback(ctx context.Context, items []FeedbackItem, emails []string) (*BulkResult, error) {
	recipients := NormalizeRecipients(emails)
	if len(items) == 0 || len(recipients) == 0 {
		return nil, fmt.Errorf("%w: Missing required fields: creative and emails", models.ErrValidation)
	}
	if err := n.mailer.Configured(); err != nil {
		return nil, err
	}

	date := n.now()
	type rendered struct {
		filename string
		subject  string
		html     string
	}
	docs := make([]rendered, len(items))
	for i := range items {
		html, err := n.renderer.FeedbackEmail(&items[i].Result, items[i].Image, items[i].Comments, date)
		if err != nil {
			return nil, err
		}
		subject, err := n.renderer.FeedbackSubject(&items[i].Result)
		if err != nil {
			return nil, err
		}
		docs[i] = rendered{filename: items[i].Result.Filename, subject: subject, html: html}
	}

	errs := make([]error, len(docs)*len(recipients))
	var g errgroup.Group
	g.SetLimit(maxConcurrentSends)
	for i, doc := range docs {
		for j, to := range recipients {
			slot := i*len(recipients) + j
			g.Go(func() error {
				errs[slot] = n.mailer.Send(ctx, &Message{To: to, Subject: doc.subject, HTML: doc.html})
				return nil
			})
		}
	}
	_ = g.Wait()

	result := &BulkResult{Attempted: len(errs)}
	var details []string
	for slot, err := range errs {
		if err == nil {
			result.Delivered++
			continue
		}
		doc, to := docs[slot/len(recipients)], recipients[slot%len(recipients)]
		result.Failures = append(result.Failures, Failure{Recipient: to, Filename: doc.filename, Detail: err.Error()})
		details = append(details, err.Error())
		log.Error().Err(err).Str("to", logging.RedactEmail(to)).Str("filename", doc.filename).Msg("Feedback email failed")
	}

	log.Info().
		Int("attempted", result.Attempted).
		Int("delivered", result.Delivered).
		Int("failed", len(result.Failures)).
		Msg("Feedback fan-out complete")

	if len(result.Failures) > 0 {
		return result, fmt.Errorf("%w: failed to send %d email(s). Details: %s",
			ErrPartialDelivery, len(result.Failures), strings.Join(details, "; "))
	}
	return result, nil
}
