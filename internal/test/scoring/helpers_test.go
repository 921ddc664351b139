package scoring_test

import (
	"context"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/scoring"
)

const pngURI = "data:image/png;base64,iVBORw0KGgo="

func brandScores(v int) map[string]int {
	m := make(map[string]int, len(models.BrandParameters))
	for _, p := range models.BrandParameters {
		m[p] = v
	}
	return m
}

func ecommerceScores(v int) map[string]int {
	m := make(map[string]int, len(models.EcommerceParameters))
	for _, p := range models.EcommerceParameters {
		m[p] = v
	}
	return m
}

func brandResult(filename string, v int) models.ScoreResult {
	return models.ScoreResult{
		Filename:      filename,
		OverallScore:  8 * v,
		BrandSubtotal: 8 * v,
		BrandScores:   brandScores(v),
		Strengths:     []string{"Clear logo", "Good contrast"},
		Risks:         []string{"Small CTA"},
	}
}

func ecommerceResult(filename string, v int) models.ScoreResult {
	r := brandResult(filename, v)
	sub := 5 * v
	r.EcommerceSubtotal = &sub
	r.EcommerceScores = ecommerceScores(v)
	r.OverallScore += sub
	return r
}

func creative(name string) models.CreativeInput {
	return models.CreativeInput{
		Filename:  name,
		ImageData: pngURI + "#" + name,
		Platform:  models.DefaultPlatform,
	}
}

type fakeEvaluator struct {
	response string
	err      error
	prompt   *scoring.Prompt
}

func (f *fakeEvaluator) Name() string { return "fake" }

func (f *fakeEvaluator) Evaluate(_ context.Context, p *scoring.Prompt) (string, error) {
	f.prompt = p
	return f.response, f.err
}
