package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrEmptyResponse is returned when the model replies with no usable content.
var ErrEmptyResponse = errors.New("empty response from model")

// Client performs a single structured-output exchange with the model.
// The response is constrained to the given JSON schema and unmarshaled
// into result; a body that fails to parse is an error, never coerced.
type Client interface {
	Chat(ctx context.Context, req Request, result any) (*Response, error)
	AnalyzeImage(ctx context.Context, req ImageRequest, result any) (*Response, error)
	Model() string
}

type Request struct {
	SystemPrompt string
	UserPrompt   string
	SchemaName   string
	Schema       any
	MaxTokens    int
	Temperature  *float64 // nil = model default, explicit 0 = deterministic
}

// ImageRequest carries one image plus optional free-text context.
// One request corresponds to exactly one image.
type ImageRequest struct {
	SystemPrompt string
	UserPrompt   string
	Image        []byte
	MimeType     string
	SchemaName   string
	Schema       any
	MaxTokens    int
}

type Response struct {
	PromptTokens     int
	CompletionTokens int
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
}

type client struct {
	openai      openai.Client
	model       string
	visionModel string
}

func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = model
	}

	return &client{
		openai:      openai.NewClient(opts...),
		model:       model,
		visionModel: visionModel,
	}, nil
}

func (c *client) Chat(ctx context.Context, req Request, result any) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(req.SystemPrompt),
		openai.UserMessage(req.UserPrompt),
	}

	params := openai.ChatCompletionNewParams{
		Model:          c.model,
		Messages:       messages,
		MaxTokens:      openai.Int(int64(maxTokens)),
		ResponseFormat: schemaResponseFormat(req.SchemaName, req.Schema),
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	return c.complete(ctx, params, result)
}

func (c *client) AnalyzeImage(ctx context.Context, req ImageRequest, result any) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", req.MimeType, encodeBase64(req.Image))

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.UserPrompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL,
		}),
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(req.SystemPrompt),
		openai.UserMessage(parts),
	}

	params := openai.ChatCompletionNewParams{
		Model:          c.visionModel,
		Messages:       messages,
		MaxTokens:      openai.Int(int64(maxTokens)),
		ResponseFormat: schemaResponseFormat(req.SchemaName, req.Schema),
	}

	return c.complete(ctx, params, result)
}

func (c *client) complete(ctx context.Context, params openai.ChatCompletionNewParams, result any) (*Response, error) {
	start := time.Now()
	resp, err := c.openai.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}

	slog.DebugContext(ctx, "llm chat completed",
		"model", params.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(content), result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &Response{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}, nil
}

func (c *client) Model() string {
	return c.model
}

func schemaResponseFormat(name string, schema any) openai.ChatCompletionNewParamsResponseFormatUnion {
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:        name,
				Description: openai.String("Structured response schema"),
				Schema:      schema,
				Strict:      openai.Bool(true),
			},
		},
	}
}

// GenerateSchema builds a strict JSON schema for T, used as the output
// shape constraint on every model call.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

func Temp(t float64) *float64 {
	return &t
}

func IsRetryable(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		slog.DebugContext(ctx, "llm error not retryable: context cancelled or deadline exceeded")
		return false
	}

	// An empty or malformed body is the model misbehaving, not a
	// transport fault; retrying the identical request rarely helps.
	if errors.Is(err, ErrEmptyResponse) {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			slog.WarnContext(ctx, "llm rate limited, will retry",
				"status_code", apiErr.StatusCode)
			return true
		case apiErr.StatusCode >= 500:
			slog.WarnContext(ctx, "llm server error, will retry",
				"status_code", apiErr.StatusCode)
			return true
		default:
			slog.ErrorContext(ctx, "llm client error, not retryable",
				"status_code", apiErr.StatusCode,
				"error_type", apiErr.Type,
				"error_code", apiErr.Code)
			return false
		}
	}

	// Network errors (no API response) are generally retryable
	slog.WarnContext(ctx, "llm network error, will retry", "error", err)
	return true
}
