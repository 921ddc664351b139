package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// OTPRecord is a one-time passcode issued to an email address.
type OTPRecord struct {
	ID         uuid.UUID
	Email      string
	Code       string
	ExpiresAt  time.Time
	Verified   bool
	VerifiedAt sql.NullTime
	CreatedAt  time.Time
}

// Expired reports whether the code is no longer usable at now.
func (o *OTPRecord) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

type User struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
	LastLogin sql.NullTime
}
