package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"creative-evaluator-backend/internal/models"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

// QueryClient is satisfied by *supabase.Client and *postgrest.Client.
type QueryClient interface {
	From(table string) *postgrest.QueryBuilder
}

// PostgRESTStore implements Store against the hosted Supabase REST API.
// PostgREST cannot span statements in a transaction, so ConsumeOTP records
// the login first, keyed by the OTP id, and only then consumes the code. A
// crash between the two leaves the code usable and a retry replays the
// same login.
type PostgRESTStore struct {
	client QueryClient
}

func NewPostgRESTStore(client QueryClient) *PostgRESTStore {
	return &PostgRESTStore{client: client}
}

// restTime accepts PostgREST timestamps with or without a zone offset.
type restTime struct {
	time.Time
}

var restTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

func (t *restTime) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range restTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

type otpRow struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	OTPCode    string    `json:"otp_code"`
	ExpiresAt  restTime  `json:"expires_at"`
	Verified   bool      `json:"verified"`
	VerifiedAt *restTime `json:"verified_at"`
	CreatedAt  restTime  `json:"created_at"`
}

type userRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt restTime  `json:"created_at"`
	LastLogin *restTime `json:"last_login"`
}

type approvalRow struct {
	CreativeHash string `json:"creative_hash"`
	IsApproved   bool   `json:"is_approved"`
}

func (s *PostgRESTStore) CreateOTP(_ context.Context, otp *models.OTPRecord) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now().UTC()
	}

	row := map[string]any{
		"id":         otp.ID.String(),
		"email":      otp.Email,
		"otp_code":   otp.Code,
		"expires_at": otp.ExpiresAt.UTC().Format(time.RFC3339Nano),
		"verified":   false,
		"created_at": otp.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if _, _, err := s.client.From("otp_codes").Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to create otp: %w", err)
	}
	return nil
}

func (s *PostgRESTStore) FindActiveOTP(_ context.Context, email, code string) (*models.OTPRecord, error) {
	var rows []otpRow
	_, err := s.client.From("otp_codes").
		Select("*", "", false).
		Eq("email", email).
		Eq("otp_code", code).
		Eq("verified", "false").
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to find otp: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	r := rows[0]
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid otp id %q: %w", r.ID, err)
	}
	otp := &models.OTPRecord{
		ID:        id,
		Email:     r.Email,
		Code:      r.OTPCode,
		ExpiresAt: r.ExpiresAt.Time,
		Verified:  r.Verified,
		CreatedAt: r.CreatedAt.Time,
	}
	if r.VerifiedAt != nil {
		otp.VerifiedAt.Time, otp.VerifiedAt.Valid = r.VerifiedAt.Time, true
	}
	return otp, nil
}

func (s *PostgRESTStore) ConsumeOTP(ctx context.Context, otpID uuid.UUID, email string, at time.Time) (*models.User, error) {
	stamp := at.UTC().Format(time.RFC3339Nano)

	if err := s.recordLogin(ctx, otpID, email, stamp); err != nil {
		return nil, err
	}

	var consumed []otpRow
	_, err := s.client.From("otp_codes").
		Update(map[string]any{"verified": true, "verified_at": stamp}, "representation", "").
		Eq("id", otpID.String()).
		Eq("verified", "false").
		ExecuteTo(&consumed)
	if err != nil {
		return nil, fmt.Errorf("failed to mark otp verified: %w", err)
	}
	if len(consumed) == 0 {
		return nil, ErrAlreadyConsumed
	}

	return s.GetUserByEmail(ctx, email)
}

func (s *PostgRESTStore) recordLogin(ctx context.Context, otpID uuid.UUID, email, stamp string) error {
	login := map[string]any{"last_login": stamp, "last_login_otp_id": otpID.String()}

	_, err := s.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		row := map[string]any{
			"id":                uuid.New().String(),
			"email":             email,
			"created_at":        stamp,
			"last_login":        stamp,
			"last_login_otp_id": otpID.String(),
		}
		_, _, insertErr := s.client.From("users").Insert(row, false, "", "minimal", "").Execute()
		if insertErr == nil {
			return nil
		}
		// A concurrent first login may have created the row.
		if !strings.Contains(insertErr.Error(), "duplicate") && !strings.Contains(insertErr.Error(), "23505") {
			return fmt.Errorf("failed to create user: %w", insertErr)
		}
	case err != nil:
		return err
	}

	if _, _, err := s.client.From("users").Update(login, "minimal", "").Eq("email", email).Execute(); err != nil {
		return fmt.Errorf("failed to update user login: %w", err)
	}
	return nil
}

func (s *PostgRESTStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	var rows []userRow
	_, err := s.client.From("users").
		Select("id,email,created_at,last_login", "", false).
		Eq("email", email).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	r := rows[0]
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", r.ID, err)
	}
	user := &models.User{ID: id, Email: r.Email, CreatedAt: r.CreatedAt.Time}
	if r.LastLogin != nil {
		user.LastLogin.Time, user.LastLogin.Valid = r.LastLogin.Time, true
	}
	return user, nil
}

func (s *PostgRESTStore) UpsertApproval(_ context.Context, rec *models.ApprovalRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	rec.UpdatedAt = now

	var existing []json.RawMessage
	_, err := s.client.From("creative_approvals").
		Select("id", "", false).
		Eq("session_id", rec.SessionID).
		Eq("creative_hash", rec.CreativeHash).
		ExecuteTo(&existing)
	if err != nil {
		return fmt.Errorf("failed to look up approval: %w", err)
	}

	if len(existing) > 0 {
		update := map[string]any{
			"is_approved":       rec.IsApproved,
			"creative_filename": rec.CreativeFilename,
			"updated_at":        now.Format(time.RFC3339Nano),
		}
		_, _, err := s.client.From("creative_approvals").
			Update(update, "minimal", "").
			Eq("session_id", rec.SessionID).
			Eq("creative_hash", rec.CreativeHash).
			Execute()
		if err != nil {
			return fmt.Errorf("failed to update approval: %w", err)
		}
		return nil
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	row := map[string]any{
		"id":                rec.ID.String(),
		"session_id":        rec.SessionID,
		"creative_hash":     rec.CreativeHash,
		"creative_filename": rec.CreativeFilename,
		"is_approved":       rec.IsApproved,
		"created_at":        rec.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":        now.Format(time.RFC3339Nano),
	}
	if _, _, err := s.client.From("creative_approvals").Insert(row, true, "session_id,creative_hash", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to insert approval: %w", err)
	}
	return nil
}

func (s *PostgRESTStore) ListApprovals(_ context.Context, sessionID string, hashes []string) (map[string]bool, error) {
	out := make(map[string]bool, len(hashes))
	if len(hashes) == 0 {
		return out, nil
	}

	var rows []approvalRow
	_, err := s.client.From("creative_approvals").
		Select("creative_hash,is_approved", "", false).
		Eq("session_id", sessionID).
		In("creative_hash", hashes).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	for _, r := range rows {
		out[r.CreativeHash] = r.IsApproved
	}
	return out, nil
}

func (s *PostgRESTStore) Close() error {
	return nil
}
