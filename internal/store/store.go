package store

import (
	"context"
	"errors"
	"time"

	"creative-evaluator-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyConsumed is returned when an OTP was verified by a
	// concurrent request between lookup and consumption.
	ErrAlreadyConsumed = errors.New("otp already consumed")
)

// Store persists OTP codes, users and approval flags.
type Store interface {
	CreateOTP(ctx context.Context, otp *models.OTPRecord) error
	// FindActiveOTP returns the newest unverified record for email and
	// code. Expiry is left to the caller.
	FindActiveOTP(ctx context.Context, email, code string) (*models.OTPRecord, error)
	// ConsumeOTP marks the record verified and records the login on the
	// user as one unit.
	ConsumeOTP(ctx context.Context, otpID uuid.UUID, email string, at time.Time) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	UpsertApproval(ctx context.Context, rec *models.ApprovalRecord) error
	// ListApprovals returns the stored flag for each known hash.
	ListApprovals(ctx context.Context, sessionID string, hashes []string) (map[string]bool, error)

	Close() error
}
