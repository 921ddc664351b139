package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"creative-evaluator-backend/internal/models"

	"github.com/osteele/liquid"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	DefaultFeedbackSubject = "Creative Feedback Report: {{ filename }}"
	DefaultOTPSubject      = "Your Verification Code"
	DefaultSenderName      = "Psalia Creative Evaluator"
)

// Renderer renders notification emails. Bodies go through html/template so
// model and user text is escaped; subjects are Liquid templates so they can
// be changed from configuration.
type Renderer struct {
	templates       *template.Template
	feedbackSubject *liquid.Template
	otpSubject      *liquid.Template
	senderName      string
}

type ScoreRow struct {
	Param string
	Score int
	Badge string
}

type feedbackView struct {
	Filename          string
	Ecommerce         bool
	OverallScore      int
	MaxScore          int
	BrandSubtotal     int
	MaxBrand          int
	EcommerceSubtotal int
	MaxEcommerce      int
	ImageURL          template.URL
	BrandScores       []ScoreRow
	EcommerceScores   []ScoreRow
	Strengths         []string
	Risks             []string
	Recommendations   []string
	Comments          string
	SenderName        string
	Date              string
}

type otpView struct {
	Code             string
	ExpiresInMinutes int
}

// NewRenderer parses the embedded templates and the subject templates.
// Empty subjects fall back to the defaults.
func NewRenderer(feedbackSubject, otpSubject, senderName string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	if feedbackSubject == "" {
		feedbackSubject = DefaultFeedbackSubject
	}
	if otpSubject == "" {
		otpSubject = DefaultOTPSubject
	}
	if senderName == "" {
		senderName = DefaultSenderName
	}

	engine := liquid.NewEngine()
	feedbackTpl, err := engine.ParseString(feedbackSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feedback subject: %w", err)
	}
	otpTpl, err := engine.ParseString(otpSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OTP subject: %w", err)
	}

	return &Renderer{
		templates:       tmpl,
		feedbackSubject: feedbackTpl,
		otpSubject:      otpTpl,
		senderName:      senderName,
	}, nil
}

// FeedbackSubject renders the subject line for a creative's report.
func (r *Renderer) FeedbackSubject(result *models.ScoreResult) (string, error) {
	out, err := r.feedbackSubject.RenderString(map[string]any{
		"filename":      result.Filename,
		"overall_score": result.OverallScore,
		"max_score":     result.MaxScore(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render feedback subject: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (r *Renderer) OTPSubject() (string, error) {
	out, err := r.otpSubject.RenderString(map[string]any{})
	if err != nil {
		return "", fmt.Errorf("failed to render OTP subject: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// FeedbackEmail renders the HTML report for one creative. image is embedded
// only when it is an image data URI or an https URL.
func (r *Renderer) FeedbackEmail(result *models.ScoreResult, image, comments string, date time.Time) (string, error) {
	view := feedbackView{
		Filename:        result.Filename,
		Ecommerce:       result.IsEcommerce(),
		OverallScore:    result.OverallScore,
		MaxScore:        result.MaxScore(),
		BrandSubtotal:   result.BrandSubtotal,
		MaxBrand:        models.MaxBrandSubtotal,
		MaxEcommerce:    models.MaxEcommerceTotal,
		ImageURL:        imageURL(image),
		BrandScores:     ScoreRows(result.BrandScores, models.BrandParameters),
		EcommerceScores: ScoreRows(result.EcommerceScores, models.EcommerceParameters),
		Strengths:       result.Strengths,
		Risks:           result.Risks,
		Recommendations: result.Recommendations,
		Comments:        strings.TrimSpace(comments),
		SenderName:      r.senderName,
		Date:            date.Format("January 2, 2006"),
	}
	if result.EcommerceSubtotal != nil {
		view.EcommerceSubtotal = *result.EcommerceSubtotal
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "feedback.html", view); err != nil {
		return "", fmt.Errorf("failed to render feedback email: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) OTPEmail(code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	view := otpView{Code: code, ExpiresInMinutes: int(ttl.Minutes())}
	if err := r.templates.ExecuteTemplate(&buf, "otp.html", view); err != nil {
		return "", fmt.Errorf("failed to render OTP email: %w", err)
	}
	return buf.String(), nil
}

// ScoreRows orders scores by the known parameter list, then any extra
// parameters the model added, alphabetically.
func ScoreRows(scores map[string]int, order []string) []ScoreRow {
	if len(scores) == 0 {
		return nil
	}

	rows := make([]ScoreRow, 0, len(scores))
	seen := make(map[string]bool, len(order))
	for _, param := range order {
		if v, ok := scores[param]; ok {
			rows = append(rows, ScoreRow{Param: param, Score: v, Badge: BadgeClass(v)})
			seen[param] = true
		}
	}

	var extra []string
	for param := range scores {
		if !seen[param] {
			extra = append(extra, param)
		}
	}
	sort.Strings(extra)
	for _, param := range extra {
		v := scores[param]
		rows = append(rows, ScoreRow{Param: param, Score: v, Badge: BadgeClass(v)})
	}
	return rows
}

func imageURL(image string) template.URL {
	if strings.HasPrefix(image, "data:image/") || strings.HasPrefix(image, "https://") {
		return template.URL(image)
	}
	return ""
}
