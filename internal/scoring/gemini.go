package scoring

import (
	"context"
	"fmt"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/staging"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiClient builds a Gemini evaluator. With no API key the client is
// left unset and Evaluate reports a configuration error.
func NewGeminiClient(ctx context.Context, apiKey, model string, maxTokens int) (*GeminiClient, error) {
	g := &GeminiClient{model: model, maxTokens: maxTokens}
	if apiKey == "" {
		return g, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiClient) Name() string { return "gemini" }

func (g *GeminiClient) Evaluate(ctx context.Context, prompt *Prompt) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: Gemini API key not configured", models.ErrNotConfigured)
	}

	parts := []*genai.Part{{Text: prompt.Text}}
	for _, img := range prompt.Images {
		mimeType, data, err := staging.DecodeDataURI(img.DataURI)
		if err != nil {
			return "", fmt.Errorf("%s: %w", img.Label, err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: mimeType, Data: data},
		})
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: prompt.System}},
		},
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  int32(g.maxTokens),
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: empty response from Gemini", models.ErrUpstream)
	}
	if resp.UsageMetadata != nil {
		log.Debug().
			Int32("input_tokens", resp.UsageMetadata.PromptTokenCount).
			Int32("output_tokens", resp.UsageMetadata.CandidatesTokenCount).
			Msg("Gemini scoring call complete")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response from Gemini", models.ErrUpstream)
	}
	return text, nil
}
