package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"job-optimizer/internal/llm"
)

// Client implements llm.Client using the Gemini API.
type Client struct {
	models   *genai.Models
	settings llm.Settings
}

// Options configure the underlying SDK client.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewClient constructs a Gemini client. settings.Model is required.
func NewClient(ctx context.Context, settings llm.Settings, opts Options) (*Client, error) {
	if strings.TrimSpace(settings.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{models: client.Models, settings: settings}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	o := c.settings.Resolve(opts...)
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(o.Temperature)),
	}
	if o.MaxTokens > 0 {
		config.MaxOutputTokens = int32(o.MaxTokens)
	}
	if o.JSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := c.models.GenerateContent(ctx, c.settings.Model, genai.Text(prompt), config)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("gemini request timeout: %w", err)
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini response missing candidates")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		reason := ""
		if resp.Candidates[0] != nil {
			reason = string(resp.Candidates[0].FinishReason)
		}
		return "", fmt.Errorf("gemini response empty content (finish_reason=%s)", reason)
	}
	return text, nil
}

var _ llm.Client = (*Client)(nil)
