package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DetectionResult is the normalized classification of one text. Every field
// is always populated; the fallback fills all of them.
type DetectionResult struct {
	IsRumor         bool     `json:"is_rumor"`
	Confidence      float64  `json:"confidence"`
	Explanation     string   `json:"explanation"`
	Keywords        []string `json:"keywords"`
	Sentiment       string   `json:"sentiment"`
	Category        string   `json:"category"`
	FactCheckPoints []string `json:"fact_check_points"`
	RiskIndicators  []string `json:"risk_indicators"`
}

// ClassifyOutcome pairs a result with how it was obtained. Degraded is set
// when Result is the fallback; Cause then says why.
type ClassifyOutcome struct {
	Result   DetectionResult
	Degraded bool
	Cause    error
}

// Classifier classifies text. Implementations never return an error: a
// provider failure yields a degraded outcome instead.
type Classifier interface {
	Classify(ctx context.Context, content string) ClassifyOutcome
	// ClassifyBatch returns exactly one outcome per input, in input order.
	ClassifyBatch(ctx context.Context, contents []string) []ClassifyOutcome
}

const fallbackExplanation = "Unable to analyze content due to service error. Please try again later."

// FallbackResult is returned whenever the provider cannot be reached or its
// output cannot be used.
func FallbackResult() DetectionResult {
	return DetectionResult{
		IsRumor:         false,
		Confidence:      0.5,
		Explanation:     fallbackExplanation,
		Keywords:        []string{},
		Sentiment:       "neutral",
		Category:        "other",
		FactCheckPoints: []string{"Manual verification required"},
		RiskIndicators:  []string{"Analysis incomplete"},
	}
}

func degraded(cause error) ClassifyOutcome {
	return ClassifyOutcome{Result: FallbackResult(), Degraded: true, Cause: cause}
}

// DeepSeekOptions configures DeepSeekClient. Zero values take the defaults
// used in production.
type DeepSeekOptions struct {
	APIKey         string
	BaseURL        string
	Model          string
	Timeout        time.Duration
	BatchTimeout   time.Duration
	MaxTokens      int
	BatchMaxTokens int
	Temperature    float32
	BatchItemRunes int
	Logger         *slog.Logger
}

// DeepSeekClient talks to an OpenAI-compatible chat completions endpoint.
// All calls share one HTTP connection pool.
type DeepSeekClient struct {
	client *openai.Client
	opts   DeepSeekOptions
	log    *slog.Logger
}

func NewDeepSeekClient(opts DeepSeekOptions) *DeepSeekClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.deepseek.com/v1"
	}
	if opts.Model == "" {
		opts.Model = "deepseek-chat"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = 120 * time.Second
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 2000
	}
	if opts.BatchMaxTokens <= 0 {
		opts.BatchMaxTokens = 4000
	}
	if opts.Temperature <= 0 {
		opts.Temperature = 0.1
	}
	if opts.BatchItemRunes <= 0 {
		opts.BatchItemRunes = 500
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = opts.BaseURL
	cfg.HTTPClient = &http.Client{}

	return &DeepSeekClient{
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
		log:    log.With("component", "deepseek"),
	}
}

func (c *DeepSeekClient) Classify(ctx context.Context, content string) ClassifyOutcome {
	text, err := c.complete(ctx, systemPrompt, buildDetectionPrompt(content), c.opts.MaxTokens, c.opts.Timeout)
	if err != nil {
		c.log.Error("detection request failed", "error", err)
		return degraded(err)
	}

	result, err := parseSingle(text)
	if err != nil {
		c.log.Error("failed to parse detection response", "error", err)
		return degraded(err)
	}
	return ClassifyOutcome{Result: result}
}

func (c *DeepSeekClient) ClassifyBatch(ctx context.Context, contents []string) []ClassifyOutcome {
	if len(contents) == 0 {
		return []ClassifyOutcome{}
	}

	prompt := buildBatchPrompt(contents, c.opts.BatchItemRunes)
	text, err := c.complete(ctx, batchSystemPrompt, prompt, c.opts.BatchMaxTokens, c.opts.BatchTimeout)
	if err != nil {
		c.log.Error("batch detection request failed", "items", len(contents), "error", err)
		return degradedAll(len(contents), err)
	}

	outcomes, err := parseBatch(text, len(contents))
	if err != nil {
		c.log.Error("failed to parse batch response", "items", len(contents), "error", err)
		return degradedAll(len(contents), err)
	}
	return outcomes
}

func (c *DeepSeekClient) complete(ctx context.Context, system, prompt string, maxTokens int, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.opts.Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return "", fmt.Errorf("deepseek timeout after %s: %w", timeout, err)
		case errors.As(err, &apiErr):
			return "", fmt.Errorf("deepseek status %d: %w", apiErr.HTTPStatusCode, err)
		case errors.As(err, &reqErr):
			return "", fmt.Errorf("deepseek status %d: %w", reqErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("call deepseek: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in deepseek response")
	}
	return resp.Choices[0].Message.Content, nil
}

func degradedAll(n int, cause error) []ClassifyOutcome {
	out := make([]ClassifyOutcome, n)
	for i := range out {
		out[i] = degraded(cause)
	}
	return out
}
