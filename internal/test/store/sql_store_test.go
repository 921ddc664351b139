package store_test

import (
	"context"
	"testing"
	"time"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *store.SQLStore {
	t.Helper()
	s, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createOTP(t *testing.T, s store.Store, email, code string, created time.Time) *models.OTPRecord {
	t.Helper()
	rec := &models.OTPRecord{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		ExpiresAt: created.Add(10 * time.Minute),
		CreatedAt: created,
	}
	require.NoError(t, s.CreateOTP(context.Background(), rec))
	return rec
}

func TestSQLStore_FindActiveOTP_ReturnsNewest(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	createOTP(t, s, "user@example.com", "123456", base)
	newer := createOTP(t, s, "user@example.com", "123456", base.Add(time.Minute))

	got, err := s.FindActiveOTP(ctx, "user@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.False(t, got.Verified)
	assert.True(t, got.ExpiresAt.Equal(newer.ExpiresAt))
}

func TestSQLStore_FindActiveOTP_NotFound(t *testing.T) {
	s := newSQLiteStore(t)
	createOTP(t, s, "user@example.com", "123456", time.Now().UTC())

	_, err := s.FindActiveOTP(context.Background(), "user@example.com", "654321")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.FindActiveOTP(context.Background(), "other@example.com", "123456")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLStore_ConsumeOTP(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	rec := createOTP(t, s, "user@example.com", "123456", now)

	user, err := s.ConsumeOTP(ctx, rec.ID, "user@example.com", now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	require.True(t, user.LastLogin.Valid)
	assert.True(t, user.LastLogin.Time.Equal(now.Add(time.Minute)))

	// consumed codes are no longer active
	_, err = s.FindActiveOTP(ctx, "user@example.com", "123456")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.ConsumeOTP(ctx, rec.ID, "user@example.com", now.Add(2*time.Minute))
	assert.ErrorIs(t, err, store.ErrAlreadyConsumed)
}

func TestSQLStore_ConsumeOTP_UpdatesExistingUser(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	first := createOTP(t, s, "user@example.com", "111111", now)
	u1, err := s.ConsumeOTP(ctx, first.ID, "user@example.com", now)
	require.NoError(t, err)

	second := createOTP(t, s, "user@example.com", "222222", now.Add(time.Hour))
	u2, err := s.ConsumeOTP(ctx, second.ID, "user@example.com", now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, u1.ID, u2.ID)
	assert.True(t, u2.LastLogin.Time.Equal(now.Add(time.Hour)))

	got, err := s.GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, got.ID)
}

func TestSQLStore_GetUserByEmail_NotFound(t *testing.T) {
	s := newSQLiteStore(t)
	_, err := s.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLStore_Approvals_LastWriteWins(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	rec := &models.ApprovalRecord{SessionID: "s1", CreativeHash: "h1", CreativeFilename: "a.png", IsApproved: true}
	require.NoError(t, s.UpsertApproval(ctx, rec))

	got, err := s.ListApprovals(ctx, "s1", []string{"h1", "h2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"h1": true}, got)

	require.NoError(t, s.UpsertApproval(ctx, &models.ApprovalRecord{
		SessionID: "s1", CreativeHash: "h1", CreativeFilename: "a.png", IsApproved: false,
	}))

	got, err = s.ListApprovals(ctx, "s1", []string{"h1"})
	require.NoError(t, err)
	flag, known := got["h1"]
	assert.True(t, known, "unapproving keeps the row")
	assert.False(t, flag)
}

func TestSQLStore_Approvals_ScopedBySession(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertApproval(ctx, &models.ApprovalRecord{
		SessionID: "s1", CreativeHash: "h1", CreativeFilename: "a.png", IsApproved: true,
	}))

	got, err := s.ListApprovals(ctx, "s2", []string{"h1"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLStore_ListApprovals_NoHashes(t *testing.T) {
	s := newSQLiteStore(t)
	got, err := s.ListApprovals(context.Background(), "s1", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
