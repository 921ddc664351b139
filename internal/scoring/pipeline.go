package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/profile"

	"github.com/rs/zerolog/log"
)

// Pipeline turns a BIP and a creative batch into one scoring request and
// normalizes the model's answer. A batch succeeds or fails as a whole.
type Pipeline struct {
	evaluator Evaluator
}

func NewPipeline(evaluator Evaluator) *Pipeline {
	return &Pipeline{evaluator: evaluator}
}

func (p *Pipeline) Score(ctx context.Context, bip string, creatives []models.CreativeInput) (*models.ResultsData, error) {
	if strings.TrimSpace(bip) == "" || len(creatives) == 0 {
		return nil, fmt.Errorf("%w: Missing required fields: bip and creatives", models.ErrValidation)
	}

	brand, err := profile.ParseProfile(bip)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(brand, creatives)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := p.evaluator.Evaluate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("provider", p.evaluator.Name()).
		Int("creatives", len(creatives)).
		Int("images", len(prompt.Images)).
		Dur("duration", time.Since(start)).
		Msg("Scoring response received")

	var result models.ResultsData
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: model returned invalid JSON: %v", models.ErrParse, err)
	}

	result.Creatives = Correlate(result.Creatives, creatives)

	for i := range result.Creatives {
		r := &result.Creatives[i]
		if idx, err := strconv.Atoi(r.CreativeID); err == nil && creatives[idx].IsEcommerce != r.IsEcommerce() {
			log.Warn().Int("index", idx).Bool("is_ecommerce", creatives[idx].IsEcommerce).Msg("E-commerce subtotal presence does not match input")
			if !creatives[idx].IsEcommerce {
				dropEcommerce(r)
			}
		}
		if err := Validate(*r); err != nil {
			log.Warn().Err(err).Int("index", i).Str("filename", r.Filename).Msg("Score result violates rubric")
		}
	}

	if len(creatives) >= 2 && result.CSVData == "" {
		csvData, err := EncodeCSV(result.Creatives)
		if err != nil {
			return nil, err
		}
		result.CSVData = csvData
	}

	return &result, nil
}

// dropEcommerce strips e-commerce scoring from a result whose creative was
// not submitted as e-commerce. The overall score loses the subtotal only
// when it was counted in.
func dropEcommerce(r *models.ScoreResult) {
	if sub := r.EcommerceSubtotal; sub != nil && r.OverallScore == r.BrandSubtotal+*sub {
		r.OverallScore = r.BrandSubtotal
	}
	r.EcommerceSubtotal = nil
	r.EcommerceScores = nil
}

// Correlate aligns model results with the submitted creatives. When every
// result echoes a distinct, known creative_id the results are ordered by
// id; otherwise they are matched by position. Results beyond the request
// length are dropped and missing imageData is filled from the matched input.
func Correlate(results []models.ScoreResult, creatives []models.CreativeInput) []models.ScoreResult {
	if byID, ok := correlateByID(results, creatives); ok {
		return byID
	}

	if len(results) > len(creatives) {
		log.Warn().Int("expected", len(creatives)).Int("got", len(results)).Msg("Dropping extra score results")
		results = results[:len(creatives)]
	}
	if len(results) < len(creatives) {
		log.Warn().Int("expected", len(creatives)).Int("got", len(results)).Msg("Model returned fewer results than creatives")
	}

	out := make([]models.ScoreResult, len(results))
	for i, r := range results {
		out[i] = backfill(r, i, creatives[i])
	}
	return out
}

func correlateByID(results []models.ScoreResult, creatives []models.CreativeInput) ([]models.ScoreResult, bool) {
	if len(results) == 0 {
		return nil, false
	}

	slots := make([]*models.ScoreResult, len(creatives))
	for i := range results {
		idx, err := strconv.Atoi(results[i].CreativeID)
		if err != nil || idx < 0 || idx >= len(creatives) || slots[idx] != nil {
			return nil, false
		}
		slots[idx] = &results[i]
	}

	out := make([]models.ScoreResult, 0, len(results))
	for i, r := range slots {
		if r == nil {
			log.Warn().Int("index", i).Str("filename", creatives[i].Filename).Msg("Model returned no result for creative")
			continue
		}
		out = append(out, backfill(*r, i, creatives[i]))
	}
	return out, true
}

func backfill(r models.ScoreResult, idx int, in models.CreativeInput) models.ScoreResult {
	r.CreativeID = strconv.Itoa(idx)
	if r.ImageData == "" {
		r.ImageData = in.ImageData
	}
	if r.Filename == "" {
		r.Filename = in.Filename
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Risks == nil {
		r.Risks = []string{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
	return r
}
