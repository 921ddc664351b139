package models

// ToneMode selects how the tone of voice reference is supplied.
type ToneMode string

const (
	ToneModeText   ToneMode = "text"
	ToneModeImages ToneMode = "images"
)

// ImageRef is a named image carried inline as a data URI.
type ImageRef struct {
	Name string `json:"name" yaml:"name"`
	Data string `json:"data" yaml:"data"`
}

// BrandProfile is the Brand Interpretation Profile (BIP) a creative is scored against.
// It travels to the scoring endpoint as an opaque JSON string.
type BrandProfile struct {
	LogoFiles            []ImageRef `json:"logoFiles"`
	ToneOfVoiceMode      ToneMode   `json:"toneOfVoiceMode"`
	ToneOfVoiceText      string     `json:"toneOfVoiceText"`
	ToneOfVoiceImages    []ImageRef `json:"toneOfVoiceImages"`
	PreApprovedCreatives []ImageRef `json:"preApprovedCreatives"`
	TargetAudience       string     `json:"targetAudience"`
	OfferingDescription  string     `json:"offeringDescription"`
}
