package models

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalRecord is a reviewer sign-off for one creative within one session.
type ApprovalRecord struct {
	ID               uuid.UUID
	SessionID        string
	CreativeHash     string
	CreativeFilename string
	IsApproved       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
