package models

type OTPRequest struct {
	Email  string `json:"email"`
	Action string `json:"action"`
	OTP    string `json:"otp,omitempty"`
}

// ScoreRequest is the body of the scoring endpoint. BIP is the profile JSON
// produced by the profile assembler, passed through as a string.
type ScoreRequest struct {
	BIP       string          `json:"bip"`
	Creatives []CreativeInput `json:"creatives"`
}

type ComparisonRequest struct {
	ComparisonTable string `json:"comparison_table"`
	CreativeCount   int    `json:"creative_count"`
}

type CSVExportRequest struct {
	CSVData string `json:"csv_data" binding:"required"`
}

// FeedbackRequest sends one creative's report to every address in Emails.
type FeedbackRequest struct {
	Creative           *ScoreResult `json:"creative"`
	CreativeImage      string       `json:"creativeImage"`
	AdditionalComments string       `json:"additionalComments"`
	Emails             []string     `json:"emails"`
}

type FeedbackItem struct {
	Creative           ScoreResult `json:"creative" binding:"required"`
	CreativeImage      string      `json:"creativeImage"`
	AdditionalComments string      `json:"additionalComments"`
}

// BulkFeedbackRequest sends every item's report to every address in Emails.
type BulkFeedbackRequest struct {
	Items  []FeedbackItem `json:"items"`
	Emails []string       `json:"emails"`
}

type ApprovalRequest struct {
	Filename   string `json:"filename" binding:"required"`
	ImageData  string `json:"imageData" binding:"required"`
	IsApproved bool   `json:"is_approved"`
}

type CreativeRef struct {
	Filename  string `json:"filename"`
	ImageData string `json:"imageData"`
}

type ApprovalQueryRequest struct {
	Creatives []CreativeRef `json:"creatives"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CreativeMetadata edits one staged creative; nil fields keep their
// defaults. Entries are matched to uploaded files by index.
type CreativeMetadata struct {
	Filename           *string `json:"filename,omitempty"`
	Platform           *string `json:"platform,omitempty"`
	IsEcommerce        *bool   `json:"is_ecommerce,omitempty"`
	HighlightedProduct *string `json:"highlighted_product,omitempty"`
}
