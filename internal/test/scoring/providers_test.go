package scoring_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/scoring"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePrompt() *scoring.Prompt {
	return &scoring.Prompt{
		System: "rubric",
		Text:   "score these",
		Images: []scoring.ImagePart{{Label: "creative 0: a.png", DataURI: pngURI}},
	}
}

func TestOpenAIClient_Evaluate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"creatives\":[]}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	client := scoring.NewOpenAIClient(srv.URL+"/", "sk-test", "gpt-4o", 4096)
	out, err := client.Evaluate(context.Background(), samplePrompt())
	require.NoError(t, err)
	assert.Equal(t, `{"creatives":[]}`, out)

	assert.Equal(t, "gpt-4o", body["model"])
	assert.Equal(t, float64(4096), body["max_tokens"])
	assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])

	messages := body["messages"].([]any)
	require.Len(t, messages, 2)
	user := messages[1].(map[string]any)
	parts := user["content"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, "image_url", parts[1].(map[string]any)["type"])
}

func TestOpenAIClient_UpstreamErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	}))
	defer srv.Close()

	_, err := scoring.NewOpenAIClient(srv.URL, "sk-test", "gpt-4o", 4096).Evaluate(context.Background(), samplePrompt())
	assert.ErrorIs(t, err, models.ErrUpstream)
	assert.Contains(t, err.Error(), "Rate limit reached")
}

func TestOpenAIClient_UpstreamErrorFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	_, err := scoring.NewOpenAIClient(srv.URL, "sk-test", "gpt-4o", 4096).Evaluate(context.Background(), samplePrompt())
	assert.ErrorIs(t, err, models.ErrUpstream)
	assert.Contains(t, err.Error(), "status 502")
}

func TestOpenAIClient_NoKey(t *testing.T) {
	_, err := scoring.NewOpenAIClient("http://unused", "", "gpt-4o", 4096).Evaluate(context.Background(), samplePrompt())
	assert.ErrorIs(t, err, models.ErrNotConfigured)
}

func TestGeminiClient_NoKey(t *testing.T) {
	client, err := scoring.NewGeminiClient(context.Background(), "", "gemini-2.5-flash", 4096)
	require.NoError(t, err)

	_, err = client.Evaluate(context.Background(), samplePrompt())
	assert.ErrorIs(t, err, models.ErrNotConfigured)
}

type fakeBedrock struct {
	input  *bedrockruntime.InvokeModelInput
	output string
	err    error
}

func (f *fakeBedrock) InvokeModel(_ context.Context, in *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.output)}, nil
}

func TestBedrockClient_Evaluate(t *testing.T) {
	fake := &fakeBedrock{
		output: `{"content":[{"type":"text","text":"Here you go:\n` + "```json" + `\n{\"creatives\":[]}\n` + "```" + `"}],"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":5}}`,
	}
	client := scoring.NewBedrockClientWithAPI(fake, "anthropic.claude-test", 2048)

	out, err := client.Evaluate(context.Background(), samplePrompt())
	require.NoError(t, err)
	assert.Equal(t, `{"creatives":[]}`, out)

	assert.Equal(t, "anthropic.claude-test", aws.ToString(fake.input.ModelId))

	var req map[string]any
	require.NoError(t, json.Unmarshal(fake.input.Body, &req))
	assert.Equal(t, "bedrock-2023-05-31", req["anthropic_version"])
	assert.Equal(t, "rubric", req["system"])

	content := req["messages"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)
	source := content[1].(map[string]any)["source"].(map[string]any)
	assert.Equal(t, "image/png", source["media_type"])
	assert.Equal(t, "iVBORw0KGgo=", source["data"])
}

func TestBedrockClient_Error(t *testing.T) {
	client := scoring.NewBedrockClientWithAPI(&fakeBedrock{err: assert.AnError}, "m", 1024)
	_, err := client.Evaluate(context.Background(), samplePrompt())
	assert.ErrorIs(t, err, models.ErrUpstream)
}
