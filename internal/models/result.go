package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Brand expression parameters, scored for every creative.
var BrandParameters = []string{
	"Logo usage",
	"Color palette",
	"Typography",
	"Imagery style",
	"Tone of voice",
	"Tagline / messaging alignment",
	"Audience fit",
	"Core message clarity",
}

// E-commerce product showcase parameters, scored only for e-commerce creatives.
var EcommerceParameters = []string{
	"Product visibility & dominance",
	"Product accuracy",
	"Product angle & presentation",
	"Usage / context clarity",
	"CTA integration & prominence",
}

const (
	MinParameterScore = 1
	MaxParameterScore = 5
	MaxBrandSubtotal  = 40
	MaxEcommerceTotal = 25
)

// ScoreResult is the model's scorecard for a single creative.
type ScoreResult struct {
	CreativeID        string         `json:"creative_id,omitempty"`
	Filename          string         `json:"filename"`
	ImageData         string         `json:"imageData"`
	OverallScore      int            `json:"overall_score"`
	BrandSubtotal     int            `json:"brand_subtotal"`
	EcommerceSubtotal *int           `json:"ecommerce_subtotal,omitempty"`
	BrandScores       map[string]int `json:"brand_scores"`
	EcommerceScores   map[string]int `json:"ecommerce_scores,omitempty"`
	Strengths         []string       `json:"strengths"`
	Risks             []string       `json:"risks"`
	Recommendations   []string       `json:"recommendations"`
}

// UnmarshalJSON accepts the id as a string or a number and scores written
// as floats ("32.0"). Fractional scores are rounded.
func (r *ScoreResult) UnmarshalJSON(b []byte) error {
	type plain ScoreResult
	aux := struct {
		*plain
		CreativeID        looseID             `json:"creative_id"`
		OverallScore      looseInt            `json:"overall_score"`
		BrandSubtotal     looseInt            `json:"brand_subtotal"`
		EcommerceSubtotal *looseInt           `json:"ecommerce_subtotal"`
		BrandScores       map[string]looseInt `json:"brand_scores"`
		EcommerceScores   map[string]looseInt `json:"ecommerce_scores"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	r.CreativeID = string(aux.CreativeID)
	r.OverallScore = int(aux.OverallScore)
	r.BrandSubtotal = int(aux.BrandSubtotal)
	r.EcommerceSubtotal = nil
	if aux.EcommerceSubtotal != nil {
		v := int(*aux.EcommerceSubtotal)
		r.EcommerceSubtotal = &v
	}
	r.BrandScores = intMap(aux.BrandScores)
	r.EcommerceScores = intMap(aux.EcommerceScores)
	return nil
}

type looseID string

func (id *looseID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = looseID(s)
	default:
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("creative_id: %w", err)
		}
		if f == math.Trunc(f) {
			*id = looseID(strconv.FormatInt(int64(f), 10))
		} else {
			*id = looseID(string(b))
		}
	}
	return nil
}

type looseInt int

func (n *looseInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("score %s is not a number", b)
	}
	*n = looseInt(math.Round(f))
	return nil
}

func intMap(in map[string]looseInt) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = int(v)
	}
	return out
}

// IsEcommerce reports whether the result carries an e-commerce subtotal.
func (r *ScoreResult) IsEcommerce() bool {
	return r.EcommerceSubtotal != nil
}

// MaxScore is the highest overall score reachable for this result.
func (r *ScoreResult) MaxScore() int {
	if r.IsEcommerce() {
		return MaxBrandSubtotal + MaxEcommerceTotal
	}
	return MaxBrandSubtotal
}

// ResultsData is the full response of a scoring run.
type ResultsData struct {
	ExecutiveSummary string        `json:"executive_summary"`
	ComparisonTable  string        `json:"comparison_table,omitempty"`
	Creatives        []ScoreResult `json:"creatives"`
	CSVData          string        `json:"csv_data,omitempty"`
}
