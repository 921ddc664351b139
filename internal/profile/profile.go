package profile

import (
	"encoding/json"
	"fmt"
	"strings"

	"creative-evaluator-backend/internal/models"
)

// CheckRequired rejects a profile without logos or a target audience. It
// needs no image data, so callers can run it before encoding uploads.
func CheckRequired(logoCount int, targetAudience string) error {
	if logoCount == 0 {
		return fmt.Errorf("%w: at least one logo is required", models.ErrValidation)
	}
	if strings.TrimSpace(targetAudience) == "" {
		return fmt.Errorf("%w: target audience is required", models.ErrValidation)
	}
	return nil
}

// AssembleProfile validates a brand profile and serializes it into the BIP
// string the scoring pipeline consumes.
func AssembleProfile(p models.BrandProfile) (string, error) {
	if err := CheckRequired(len(p.LogoFiles), p.TargetAudience); err != nil {
		return "", err
	}

	switch p.ToneOfVoiceMode {
	case "":
		p.ToneOfVoiceMode = models.ToneModeText
	case models.ToneModeText, models.ToneModeImages:
	default:
		return "", fmt.Errorf("%w: unknown tone of voice mode %q", models.ErrValidation, p.ToneOfVoiceMode)
	}

	// Only the active tone source is kept.
	if p.ToneOfVoiceMode == models.ToneModeText {
		p.ToneOfVoiceImages = nil
	} else {
		p.ToneOfVoiceText = ""
	}

	if p.ToneOfVoiceImages == nil {
		p.ToneOfVoiceImages = []models.ImageRef{}
	}
	if p.PreApprovedCreatives == nil {
		p.PreApprovedCreatives = []models.ImageRef{}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	return string(data), nil
}

// ParseProfile decodes a BIP string. Malformed JSON is a parse error.
func ParseProfile(bip string) (*models.BrandProfile, error) {
	var p models.BrandProfile
	if err := json.Unmarshal([]byte(bip), &p); err != nil {
		return nil, fmt.Errorf("%w: invalid brand profile: %v", models.ErrParse, err)
	}
	return &p, nil
}
