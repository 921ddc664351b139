package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"creative-evaluator-backend/internal/auth"
	"creative-evaluator-backend/internal/mailer"
	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/report"
	"creative-evaluator-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu        sync.Mutex
	sent      []*mailer.Message
	sendErr   error
	configErr error
}

func (m *fakeMailer) Send(_ context.Context, msg *mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Configured() error { return m.configErr }

// recordingStore remembers the last issued code so tests can verify it.
type recordingStore struct {
	store.Store
	last *models.OTPRecord
}

func (s *recordingStore) CreateOTP(ctx context.Context, otp *models.OTPRecord) error {
	s.last = otp
	return s.Store.CreateOTP(ctx, otp)
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type fixture struct {
	svc    *auth.Service
	store  *recordingStore
	mailer *fakeMailer
	clock  *clock
}

func newFixture(t *testing.T, opts auth.Options) *fixture {
	t.Helper()
	sqlStore, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlStore.Close() })

	renderer, err := report.NewRenderer("", "", "")
	require.NoError(t, err)

	c := &clock{now: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)}
	st := &recordingStore{Store: sqlStore}
	m := &fakeMailer{}
	limiter := auth.NewMemoryLimiter().WithClock(c.Now)
	sessions := auth.NewSessionManager("test-secret", time.Hour).WithClock(c.Now)

	svc := auth.NewService(st, m, renderer, limiter, sessions, opts).WithClock(c.Now)
	return &fixture{svc: svc, store: st, mailer: m, clock: c}
}

func TestOTP_SendVerifyReuseExpire(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()

	require.NoError(t, f.svc.SendCode(ctx, "User@Example.com "))
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "user@example.com", f.mailer.sent[0].To)
	assert.Equal(t, "Your Verification Code", f.mailer.sent[0].Subject)

	code := f.store.last.Code
	assert.Len(t, code, 6)
	assert.Contains(t, f.mailer.sent[0].HTML, code)
	assert.True(t, f.store.last.ExpiresAt.Equal(f.clock.now.Add(10*time.Minute)))

	session, err := f.svc.Verify(ctx, "user@example.com", code)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", session.Email)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.Token)

	// a consumed code cannot be used again
	_, err = f.svc.Verify(ctx, "user@example.com", code)
	assert.ErrorIs(t, err, auth.ErrInvalidOTP)

	// a fresh code past its expiry is rejected
	require.NoError(t, f.svc.SendCode(ctx, "user@example.com"))
	f.clock.now = f.clock.now.Add(11 * time.Minute)
	_, err = f.svc.Verify(ctx, "user@example.com", f.store.last.Code)
	assert.ErrorIs(t, err, auth.ErrInvalidOTP)
}

func TestOTP_VerifyUnknownCode(t *testing.T) {
	f := newFixture(t, auth.Options{})
	_, err := f.svc.Verify(context.Background(), "user@example.com", "000000")
	assert.ErrorIs(t, err, auth.ErrInvalidOTP)
}

func TestOTP_MissingFields(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()

	err := f.svc.SendCode(ctx, "   ")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "Email is required")

	_, err = f.svc.Verify(ctx, "user@example.com", "")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "OTP is required")
}

func TestOTP_SendFailures(t *testing.T) {
	f := newFixture(t, auth.Options{})
	ctx := context.Background()

	f.mailer.configErr = models.ErrNotConfigured
	assert.ErrorIs(t, f.svc.SendCode(ctx, "user@example.com"), models.ErrNotConfigured)
	assert.Nil(t, f.store.last, "nothing stored without a mail credential")

	f.mailer.configErr = nil
	f.mailer.sendErr = errors.New("Status 401: unauthorized")
	err := f.svc.SendCode(ctx, "user@example.com")
	assert.ErrorIs(t, err, auth.ErrDelivery)
}

func TestOTP_AttemptCeiling(t *testing.T) {
	f := newFixture(t, auth.Options{MaxAttempts: 3})
	ctx := context.Background()

	require.NoError(t, f.svc.SendCode(ctx, "user@example.com"))
	code := f.store.last.Code

	for i := 0; i < 3; i++ {
		_, err := f.svc.Verify(ctx, "user@example.com", "000000")
		assert.ErrorIs(t, err, auth.ErrInvalidOTP)
	}

	// the right code is refused once the ceiling is hit
	_, err := f.svc.Verify(ctx, "user@example.com", code)
	assert.ErrorIs(t, err, auth.ErrTooManyAttempts)

	// the window resets
	f.clock.now = f.clock.now.Add(auth.DefaultLimitWindow)
	f.clock.now = f.clock.now.Add(-time.Minute)
	_, err = f.svc.Verify(ctx, "user@example.com", code)
	assert.ErrorIs(t, err, auth.ErrTooManyAttempts)

	f.clock.now = f.clock.now.Add(2 * time.Minute)
	_, err = f.svc.Verify(ctx, "user@example.com", code)
	assert.ErrorIs(t, err, auth.ErrInvalidOTP, "code expired by now")
}

func TestOTP_SendCeiling(t *testing.T) {
	f := newFixture(t, auth.Options{MaxSends: 2})
	ctx := context.Background()

	require.NoError(t, f.svc.SendCode(ctx, "user@example.com"))
	require.NoError(t, f.svc.SendCode(ctx, "user@example.com"))
	assert.ErrorIs(t, f.svc.SendCode(ctx, "user@example.com"), auth.ErrTooManyAttempts)
	assert.Len(t, f.mailer.sent, 2)

	// limits are per address
	require.NoError(t, f.svc.SendCode(ctx, "other@example.com"))
}

func TestGenerateCode_SixDigits(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := auth.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.NotEqual(t, "0", code[:1])
		assert.Empty(t, strings.Trim(code, "0123456789"))
	}
}
