package scoring_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/profile"
	"creative-evaluator-backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBIP(t *testing.T) string {
	t.Helper()
	bip, err := profile.AssembleProfile(models.BrandProfile{
		LogoFiles:      []models.ImageRef{{Name: "logo.png", Data: pngURI}},
		TargetAudience: "Runners",
	})
	require.NoError(t, err)
	return bip
}

func modelResponse(t *testing.T, results ...models.ScoreResult) string {
	t.Helper()
	out, err := json.Marshal(models.ResultsData{
		ExecutiveSummary: "Two strong creatives.",
		ComparisonTable:  "| Creative | Score |\n|---|---|\n| a | 32 |",
		Creatives:        results,
	})
	require.NoError(t, err)
	return string(out)
}

func TestPipeline_RequiresInputs(t *testing.T) {
	p := scoring.NewPipeline(&fakeEvaluator{})

	_, err := p.Score(context.Background(), "", []models.CreativeInput{creative("a.png")})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = p.Score(context.Background(), testBIP(t), nil)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "Missing required fields")
}

func TestPipeline_MalformedBIP(t *testing.T) {
	p := scoring.NewPipeline(&fakeEvaluator{})
	_, err := p.Score(context.Background(), "{not json", []models.CreativeInput{creative("a.png")})
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestPipeline_InvalidModelJSON(t *testing.T) {
	p := scoring.NewPipeline(&fakeEvaluator{response: "I cannot score these."})
	_, err := p.Score(context.Background(), testBIP(t), []models.CreativeInput{creative("a.png")})
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestPipeline_EvaluatorErrorPropagates(t *testing.T) {
	p := scoring.NewPipeline(&fakeEvaluator{err: models.ErrNotConfigured})
	_, err := p.Score(context.Background(), testBIP(t), []models.CreativeInput{creative("a.png")})
	assert.ErrorIs(t, err, models.ErrNotConfigured)
}

func TestPipeline_SingleCreativeNoCSV(t *testing.T) {
	r := brandResult("a.png", 4)
	eval := &fakeEvaluator{response: modelResponse(t, r)}

	res, err := scoring.NewPipeline(eval).Score(context.Background(), testBIP(t), []models.CreativeInput{creative("a.png")})
	require.NoError(t, err)

	require.Len(t, res.Creatives, 1)
	assert.Empty(t, res.CSVData)
	assert.Equal(t, creative("a.png").ImageData, res.Creatives[0].ImageData, "imageData is back-filled")
	assert.Equal(t, "0", res.Creatives[0].CreativeID)
	assert.Len(t, eval.prompt.Images, 2, "logo and creative")
}

func TestPipeline_DerivesCSVForBatches(t *testing.T) {
	eval := &fakeEvaluator{response: modelResponse(t, brandResult("a.png", 4), ecommerceResult("b.png", 3))}
	b := creative("b.png")
	b.IsEcommerce = true

	res, err := scoring.NewPipeline(eval).Score(context.Background(), testBIP(t), []models.CreativeInput{creative("a.png"), b})
	require.NoError(t, err)

	require.NotEmpty(t, res.CSVData)
	raw, err := base64.StdEncoding.DecodeString(res.CSVData)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "b.png,39,24,15,"))
}

func TestPipeline_KeepsModelCSV(t *testing.T) {
	out, err := json.Marshal(models.ResultsData{
		Creatives: []models.ScoreResult{brandResult("a.png", 4), brandResult("b.png", 4)},
		CSVData:   "bW9kZWw=",
	})
	require.NoError(t, err)

	res, err := scoring.NewPipeline(&fakeEvaluator{response: string(out)}).
		Score(context.Background(), testBIP(t), []models.CreativeInput{creative("a.png"), creative("b.png")})
	require.NoError(t, err)
	assert.Equal(t, "bW9kZWw=", res.CSVData)
}

func rawResult(t *testing.T, id, filename string, score string) string {
	t.Helper()
	scores := make(map[string]json.RawMessage, len(models.BrandParameters))
	for _, p := range models.BrandParameters {
		scores[p] = json.RawMessage(score)
	}
	b, err := json.Marshal(scores)
	require.NoError(t, err)
	return fmt.Sprintf(`{"creative_id":%s,"filename":%q,"overall_score":32.0,"brand_subtotal":32.0,"brand_scores":%s,"strengths":[],"risks":[],"recommendations":[]}`,
		id, filename, b)
}

func TestPipeline_AcceptsNumericCreativeIDs(t *testing.T) {
	raw := fmt.Sprintf(`{"executive_summary":"ok","creatives":[%s,%s]}`,
		rawResult(t, "1", "b.png", "4"), rawResult(t, "0", "a.png", "4"))

	res, err := scoring.NewPipeline(&fakeEvaluator{response: raw}).
		Score(context.Background(), testBIP(t), []models.CreativeInput{creative("a.png"), creative("b.png")})
	require.NoError(t, err)

	require.Len(t, res.Creatives, 2)
	assert.Equal(t, "a.png", res.Creatives[0].Filename, "ordered by echoed id")
	assert.Equal(t, "0", res.Creatives[0].CreativeID)
	assert.Equal(t, "b.png", res.Creatives[1].Filename)
	assert.Equal(t, "1", res.Creatives[1].CreativeID)
}

func TestPipeline_AcceptsFloatScores(t *testing.T) {
	raw := fmt.Sprintf(`{"executive_summary":"ok","creatives":[%s]}`, rawResult(t, `"0"`, "a.png", "4.0"))

	res, err := scoring.NewPipeline(&fakeEvaluator{response: raw}).
		Score(context.Background(), testBIP(t), []models.CreativeInput{creative("a.png")})
	require.NoError(t, err)

	require.Len(t, res.Creatives, 1)
	r := res.Creatives[0]
	assert.Equal(t, 32, r.OverallScore)
	assert.Equal(t, 32, r.BrandSubtotal)
	assert.Equal(t, 4, r.BrandScores["Logo usage"])
	assert.Nil(t, r.EcommerceSubtotal)
	assert.NoError(t, scoring.Validate(r))
}

func TestPipeline_NonEcommerceInputsReportNA(t *testing.T) {
	a := brandResult("a.png", 4)
	zero := 0
	a.EcommerceSubtotal = &zero
	b := ecommerceResult("b.png", 3)

	res, err := scoring.NewPipeline(&fakeEvaluator{response: modelResponse(t, a, b)}).
		Score(context.Background(), testBIP(t), []models.CreativeInput{creative("a.png"), creative("b.png")})
	require.NoError(t, err)

	for _, r := range res.Creatives {
		assert.Nil(t, r.EcommerceSubtotal, r.Filename)
		assert.Nil(t, r.EcommerceScores, r.Filename)
	}
	assert.Equal(t, 24, res.Creatives[1].OverallScore, "subtotal removed from the overall score")

	raw, err := base64.StdEncoding.DecodeString(res.CSVData)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "a.png,32,32,N/A,4,4,4,4,4,4,4,4,N/A,N/A,N/A,N/A,N/A,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "b.png,24,24,N/A,3,3,3,3,3,3,3,3,N/A,N/A,N/A,N/A,N/A,"), lines[2])
}

func TestCorrelate_ByID(t *testing.T) {
	inputs := []models.CreativeInput{creative("a.png"), creative("b.png"), creative("c.png")}

	rc := brandResult("", 3)
	rc.CreativeID = "2"
	ra := brandResult("a.png", 4)
	ra.CreativeID = "0"

	out := scoring.Correlate([]models.ScoreResult{rc, ra}, inputs)
	require.Len(t, out, 2)
	assert.Equal(t, "a.png", out[0].Filename)
	assert.Equal(t, "2", out[1].CreativeID)
	assert.Equal(t, "c.png", out[1].Filename, "filename back-filled from the matched input")
	assert.Equal(t, inputs[2].ImageData, out[1].ImageData)
}

func TestCorrelate_PositionalFallback(t *testing.T) {
	inputs := []models.CreativeInput{creative("a.png"), creative("b.png")}

	// duplicate ids cannot be trusted
	r1 := brandResult("first", 4)
	r1.CreativeID = "1"
	r2 := brandResult("second", 4)
	r2.CreativeID = "1"
	r3 := brandResult("extra", 4)

	out := scoring.Correlate([]models.ScoreResult{r1, r2, r3}, inputs)
	require.Len(t, out, 2, "results beyond the request are dropped")
	assert.Equal(t, "first", out[0].Filename)
	assert.Equal(t, "0", out[0].CreativeID)
	assert.Equal(t, inputs[0].ImageData, out[0].ImageData)
	assert.Equal(t, inputs[1].ImageData, out[1].ImageData)
}

func TestCorrelate_KeepsModelImageData(t *testing.T) {
	r := brandResult("a.png", 4)
	r.ImageData = "data:image/png;base64,model"
	out := scoring.Correlate([]models.ScoreResult{r}, []models.CreativeInput{creative("a.png")})
	require.Len(t, out, 1)
	assert.Equal(t, "data:image/png;base64,model", out[0].ImageData)
}

func TestCorrelate_NormalizesNilLists(t *testing.T) {
	r := models.ScoreResult{Filename: "a.png"}
	out := scoring.Correlate([]models.ScoreResult{r}, []models.CreativeInput{creative("a.png")})
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Strengths)
	assert.NotNil(t, out[0].Risks)
	assert.NotNil(t, out[0].Recommendations)
}
