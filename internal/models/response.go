package models

import "time"

type OTPResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Token     string     `json:"token,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ProfileResponse struct {
	BIP string `json:"bip"`
}

type StageResponse struct {
	Creatives []CreativeInput `json:"creatives"`
}

type ComparisonResponse struct {
	HTML string `json:"html"`
}

type ArchiveResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type BulkFeedbackResponse struct {
	Success   bool     `json:"success"`
	Attempted int      `json:"attempted"`
	Delivered int      `json:"delivered"`
	Failures  []string `json:"failures,omitempty"`
}

type ApprovalResponse struct {
	CreativeHash string `json:"creative_hash"`
	IsApproved   bool   `json:"is_approved"`
}

type ApprovalQueryResponse struct {
	Approved []int `json:"approved"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
