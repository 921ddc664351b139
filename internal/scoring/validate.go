package scoring

import (
	"errors"
	"fmt"

	"creative-evaluator-backend/internal/models"
)

// Validate checks a result against the rubric arithmetic. It returns every
// violation joined into one error, or nil.
func Validate(r models.ScoreResult) error {
	var errs []error

	brandSum, brandErrs := checkScores("brand", r.BrandScores, models.BrandParameters)
	errs = append(errs, brandErrs...)
	if brandSum != r.BrandSubtotal {
		errs = append(errs, fmt.Errorf("brand_subtotal %d does not equal score sum %d", r.BrandSubtotal, brandSum))
	}
	if r.BrandSubtotal < 0 || r.BrandSubtotal > models.MaxBrandSubtotal {
		errs = append(errs, fmt.Errorf("brand_subtotal %d outside [0,%d]", r.BrandSubtotal, models.MaxBrandSubtotal))
	}

	expected := r.BrandSubtotal
	switch {
	case r.EcommerceSubtotal != nil:
		ecomSum, ecomErrs := checkScores("e-commerce", r.EcommerceScores, models.EcommerceParameters)
		errs = append(errs, ecomErrs...)
		if ecomSum != *r.EcommerceSubtotal {
			errs = append(errs, fmt.Errorf("ecommerce_subtotal %d does not equal score sum %d", *r.EcommerceSubtotal, ecomSum))
		}
		if *r.EcommerceSubtotal < 0 || *r.EcommerceSubtotal > models.MaxEcommerceTotal {
			errs = append(errs, fmt.Errorf("ecommerce_subtotal %d outside [0,%d]", *r.EcommerceSubtotal, models.MaxEcommerceTotal))
		}
		expected += *r.EcommerceSubtotal
	case len(r.EcommerceScores) > 0:
		errs = append(errs, errors.New("ecommerce_scores present without ecommerce_subtotal"))
	}

	if r.OverallScore != expected {
		errs = append(errs, fmt.Errorf("overall_score %d does not equal subtotal sum %d", r.OverallScore, expected))
	}

	return errors.Join(errs...)
}

func checkScores(kind string, scores map[string]int, params []string) (int, []error) {
	var errs []error
	if len(scores) != len(params) {
		errs = append(errs, fmt.Errorf("%s scores: expected %d parameters, got %d", kind, len(params), len(scores)))
	}
	sum := 0
	for _, p := range params {
		v, ok := scores[p]
		if !ok {
			errs = append(errs, fmt.Errorf("%s scores: missing %q", kind, p))
			continue
		}
		if v < models.MinParameterScore || v > models.MaxParameterScore {
			errs = append(errs, fmt.Errorf("%s scores: %q = %d outside [%d,%d]", kind, p, v, models.MinParameterScore, models.MaxParameterScore))
		}
		sum += v
	}
	return sum, errs
}
