package claude

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"job-optimizer/internal/llm"
)

// Client implements llm.Client using Anthropic's Messages API.
type Client struct {
	client   anthropic.Client
	settings llm.Settings
}

type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewClient constructs a Claude client. The SDK's automatic retries are disabled.
func NewClient(settings llm.Settings, opts Options) (*Client, error) {
	if strings.TrimSpace(settings.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Claude")
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &Client{client: anthropic.NewClient(reqOpts...), settings: settings}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	o := c.settings.Resolve(opts...)
	maxTokens := int64(o.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.settings.Model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(o.Temperature),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("claude response empty content (stop_reason=%s)", resp.StopReason)
	}
	return text, nil
}

var _ llm.Client = (*Client)(nil)
