package scoring

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/staging"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/rs/zerolog/log"
)

const anthropicBedrockVersion = "bedrock-2023-05-31"

// BedrockAPI is the subset of the Bedrock runtime client used for scoring.
type BedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type BedrockClient struct {
	api       BedrockAPI
	modelID   string
	maxTokens int
}

type bedrockImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type bedrockContentBlock struct {
	Type   string              `json:"type"`
	Text   string              `json:"text,omitempty"`
	Source *bedrockImageSource `json:"source,omitempty"`
}

type bedrockMessage struct {
	Role    string                `json:"role"`
	Content []bedrockContentBlock `json:"content"`
}

type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	System           string           `json:"system,omitempty"`
	Messages         []bedrockMessage `json:"messages"`
}

type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewBedrockClient loads AWS configuration for region. Static keys are used
// when both are set, otherwise the default credential chain applies.
func NewBedrockClient(ctx context.Context, region, accessKey, secretKey, modelID string, maxTokens int) (*BedrockClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewBedrockClientWithAPI(bedrockruntime.NewFromConfig(cfg), modelID, maxTokens), nil
}

func NewBedrockClientWithAPI(api BedrockAPI, modelID string, maxTokens int) *BedrockClient {
	return &BedrockClient{api: api, modelID: modelID, maxTokens: maxTokens}
}

func (b *BedrockClient) Name() string { return "bedrock" }

func (b *BedrockClient) Evaluate(ctx context.Context, prompt *Prompt) (string, error) {
	content := []bedrockContentBlock{{Type: "text", Text: prompt.Text}}
	for _, img := range prompt.Images {
		mediaType, data, err := staging.DecodeDataURI(img.DataURI)
		if err != nil {
			return "", fmt.Errorf("%s: %w", img.Label, err)
		}
		content = append(content, bedrockContentBlock{
			Type: "image",
			Source: &bedrockImageSource{
				Type:      "base64",
				MediaType: mediaType,
				Data:      base64.StdEncoding.EncodeToString(data),
			},
		})
	}

	request := bedrockRequest{
		AnthropicVersion: anthropicBedrockVersion,
		MaxTokens:        b.maxTokens,
		System:           prompt.System,
		Messages:         []bedrockMessage{{Role: "user", Content: content}},
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := b.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        requestBody,
	})
	if err != nil {
		return "", fmt.Errorf("%w: Bedrock API error: %v", models.ErrUpstream, err)
	}

	var response bedrockResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return "", fmt.Errorf("%w: failed to parse Bedrock response: %v", models.ErrParse, err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	log.Debug().
		Int("input_tokens", response.Usage.InputTokens).
		Int("output_tokens", response.Usage.OutputTokens).
		Str("stop_reason", response.StopReason).
		Msg("Bedrock scoring call complete")

	if text.Len() == 0 {
		return "", fmt.Errorf("%w: empty response from Bedrock", models.ErrUpstream)
	}
	return extractJSONObject(text.String()), nil
}

// extractJSONObject trims prose or code fences around the outermost JSON
// object. Models without a JSON response mode sometimes add them.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
