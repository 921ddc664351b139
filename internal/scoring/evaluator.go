package scoring

import (
	"context"
	"fmt"

	"creative-evaluator-backend/internal/config"
)

// Evaluator sends a scoring prompt to a vision model and returns the raw
// JSON text of its answer.
type Evaluator interface {
	Evaluate(ctx context.Context, prompt *Prompt) (string, error)
	Name() string
}

// NewEvaluator returns the evaluator selected by AI_PROVIDER. Missing
// credentials are reported when Evaluate is called, not here.
func NewEvaluator(ctx context.Context, cfg *config.Config) (Evaluator, error) {
	switch cfg.AIProvider {
	case "openai", "":
		return NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.MaxTokens), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxTokens)
	case "bedrock":
		return NewBedrockClient(ctx, cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.BedrockModel, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}
