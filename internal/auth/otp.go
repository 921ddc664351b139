package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"creative-evaluator-backend/internal/logging"
	"creative-evaluator-backend/internal/mailer"
	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/report"
	"creative-evaluator-backend/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidOTP      = errors.New("Invalid or expired OTP")
	ErrTooManyAttempts = errors.New("too many attempts, try again later")
	ErrDelivery        = errors.New("Failed to send email")
)

const (
	codeMin = 100000
	codeMax = 999999

	DefaultLimitWindow = 10 * time.Minute
)

type Options struct {
	CodeTTL     time.Duration
	MaxAttempts int
	MaxSends    int
	Window      time.Duration
}

// Service implements the two server-side steps of email sign-in: sending a
// code and exchanging it for a session.
type Service struct {
	store    store.Store
	mailer   mailer.Mailer
	renderer *report.Renderer
	limiter  Limiter
	sessions *SessionManager
	opts     Options
	now      func() time.Time
}

func NewService(st store.Store, m mailer.Mailer, r *report.Renderer, l Limiter, sessions *SessionManager, opts Options) *Service {
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = 10 * time.Minute
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.MaxSends <= 0 {
		opts.MaxSends = 5
	}
	if opts.Window <= 0 {
		opts.Window = DefaultLimitWindow
	}
	if l == nil {
		l = NewMemoryLimiter()
	}
	return &Service{
		store:    st,
		mailer:   m,
		renderer: r,
		limiter:  l,
		sessions: sessions,
		opts:     opts,
		now:      time.Now,
	}
}

// WithClock overrides the time source used for code expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SendCode issues a fresh code for email and mails it. Earlier unexpired
// codes stay valid.
func (s *Service) SendCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: Email is required", models.ErrValidation)
	}
	if err := s.mailer.Configured(); err != nil {
		return err
	}

	if err := s.allow(ctx, "send:"+email, s.opts.MaxSends); err != nil {
		return err
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}

	now := s.now()
	rec := &models.OTPRecord{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.opts.CodeTTL),
		CreatedAt: now,
	}
	if err := s.store.CreateOTP(ctx, rec); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	subject, err := s.renderer.OTPSubject()
	if err != nil {
		return err
	}
	html, err := s.renderer.OTPEmail(code, s.opts.CodeTTL)
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, &mailer.Message{To: email, Subject: subject, HTML: html}); err != nil {
		log.Error().Err(err).Str("email", logging.RedactEmail(email)).Msg("Failed to send OTP email")
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	log.Info().Str("email", logging.RedactEmail(email)).Msg("OTP sent")
	return nil
}

// Verify consumes a matching unexpired code and opens a session.
func (s *Service) Verify(ctx context.Context, email, code string) (*Session, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" {
		return nil, fmt.Errorf("%w: Email is required", models.ErrValidation)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: OTP is required", models.ErrValidation)
	}

	if err := s.allow(ctx, "verify:"+email, s.opts.MaxAttempts); err != nil {
		return nil, err
	}

	rec, err := s.store.FindActiveOTP(ctx, email, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidOTP
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up otp: %w", err)
	}

	now := s.now()
	if rec.Expired(now) {
		return nil, ErrInvalidOTP
	}

	if _, err := s.store.ConsumeOTP(ctx, rec.ID, email, now); err != nil {
		if errors.Is(err, store.ErrAlreadyConsumed) {
			return nil, ErrInvalidOTP
		}
		return nil, fmt.Errorf("failed to consume otp: %w", err)
	}

	if err := s.limiter.Reset(ctx, "verify:"+email); err != nil {
		log.Warn().Err(err).Msg("Failed to reset verify counter")
	}

	session, err := s.sessions.Issue(email)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", logging.RedactEmail(email)).Str("session_id", session.ID).Msg("OTP verified")
	return session, nil
}

func (s *Service) allow(ctx context.Context, key string, limit int) error {
	ok, err := s.limiter.Allow(ctx, key, limit, s.opts.Window)
	if err != nil {
		return fmt.Errorf("rate limiter unavailable: %w", err)
	}
	if !ok {
		return ErrTooManyAttempts
	}
	return nil
}

// GenerateCode returns a uniformly random six-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
