package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/store"
)

// Fingerprint identifies a creative by content: the hex SHA-256 of the
// filename, a NUL separator and the full image data.
func Fingerprint(filename, imageData string) string {
	h := sha256.New()
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write([]byte(imageData))
	return hex.EncodeToString(h.Sum(nil))
}

// ApprovalService records reviewer sign-off per session and creative.
type ApprovalService struct {
	store store.Store
}

func NewApprovalService(s store.Store) *ApprovalService {
	return &ApprovalService{store: s}
}

// SetApproval upserts the flag for (session, fingerprint). The last write
// wins and records are never deleted.
func (s *ApprovalService) SetApproval(ctx context.Context, sessionID, filename, imageData string, approved bool) (*models.ApprovalRecord, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id is required", models.ErrValidation)
	}
	if filename == "" || imageData == "" {
		return nil, fmt.Errorf("%w: filename and imageData are required", models.ErrValidation)
	}

	rec := &models.ApprovalRecord{
		SessionID:        sessionID,
		CreativeHash:     Fingerprint(filename, imageData),
		CreativeFilename: filename,
		IsApproved:       approved,
	}
	if err := s.store.UpsertApproval(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadApprovals returns the indices of creatives approved in this session.
func (s *ApprovalService) LoadApprovals(ctx context.Context, sessionID string, creatives []models.CreativeRef) ([]int, error) {
	approved := []int{}
	if len(creatives) == 0 {
		return approved, nil
	}

	hashes := make([]string, len(creatives))
	for i, c := range creatives {
		hashes[i] = Fingerprint(c.Filename, c.ImageData)
	}

	stored, err := s.store.ListApprovals(ctx, sessionID, hashes)
	if err != nil {
		return nil, err
	}

	for i, h := range hashes {
		if stored[h] {
			approved = append(approved, i)
		}
	}
	return approved, nil
}
