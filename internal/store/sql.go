package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"creative-evaluator-backend/internal/database"
	"creative-evaluator-backend/internal/models"

	"github.com/google/uuid"
)

// SQLStore implements Store over database/sql for Postgres and SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLStore(db *sql.DB, dialect database.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) q(query string) string {
	return database.Rebind(s.dialect, query)
}

func (s *SQLStore) CreateOTP(ctx context.Context, otp *models.OTPRecord) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO otp_codes (id, email, otp_code, expires_at, verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), otp.ID.String(), otp.Email, otp.Code, otp.ExpiresAt.UTC(), false, otp.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create otp: %w", err)
	}
	return nil
}

func (s *SQLStore) FindActiveOTP(ctx context.Context, email, code string) (*models.OTPRecord, error) {
	var (
		otp models.OTPRecord
		id  string
	)
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT id, email, otp_code, expires_at, verified, verified_at, created_at
		FROM otp_codes
		WHERE email = ? AND otp_code = ? AND verified = ?
		ORDER BY created_at DESC
		LIMIT 1
	`), email, code, false).Scan(
		&id, &otp.Email, &otp.Code, &otp.ExpiresAt, &otp.Verified, &otp.VerifiedAt, &otp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find otp: %w", err)
	}

	if otp.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid otp id %q: %w", id, err)
	}
	return &otp, nil
}

func (s *SQLStore) ConsumeOTP(ctx context.Context, otpID uuid.UUID, email string, at time.Time) (*models.User, error) {
	at = at.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.q(`
		UPDATE otp_codes SET verified = ?, verified_at = ?
		WHERE id = ? AND verified = ?
	`), true, at, otpID.String(), false)
	if err != nil {
		return nil, fmt.Errorf("failed to mark otp verified: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to mark otp verified: %w", err)
	}
	if n == 0 {
		return nil, ErrAlreadyConsumed
	}

	if _, err := tx.ExecContext(ctx, s.q(`
		INSERT INTO users (id, email, created_at, last_login, last_login_otp_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE
		SET last_login = excluded.last_login, last_login_otp_id = excluded.last_login_otp_id
	`), uuid.New().String(), email, at, at, otpID.String()); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	user, err := scanUser(tx.QueryRowContext(ctx, s.q(`
		SELECT id, email, created_at, last_login FROM users WHERE email = ?
	`), email))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit otp consumption: %w", err)
	}
	return user, nil
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, s.q(`
		SELECT id, email, created_at, last_login FROM users WHERE email = ?
	`), email))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		user models.User
		id   string
	)
	err := row.Scan(&id, &user.Email, &user.CreatedAt, &user.LastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return &user, nil
}

func (s *SQLStore) UpsertApproval(ctx context.Context, rec *models.ApprovalRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO creative_approvals
			(id, session_id, creative_hash, creative_filename, is_approved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id, creative_hash) DO UPDATE
		SET is_approved = excluded.is_approved,
			creative_filename = excluded.creative_filename,
			updated_at = excluded.updated_at
	`), rec.ID.String(), rec.SessionID, rec.CreativeHash, rec.CreativeFilename, rec.IsApproved, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert approval: %w", err)
	}
	return nil
}

func (s *SQLStore) ListApprovals(ctx context.Context, sessionID string, hashes []string) (map[string]bool, error) {
	out := make(map[string]bool, len(hashes))
	if len(hashes) == 0 {
		return out, nil
	}

	args := make([]any, 0, len(hashes)+1)
	args = append(args, sessionID)
	for _, h := range hashes {
		args = append(args, h)
	}

	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT creative_hash, is_approved FROM creative_approvals
		WHERE session_id = ? AND creative_hash IN (`+database.Placeholders(len(hashes))+`)
	`), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			hash     string
			approved bool
		)
		if err := rows.Scan(&hash, &approved); err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		out[hash] = approved
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	return out, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
