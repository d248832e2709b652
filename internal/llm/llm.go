package llm

import (
	"context"
	"errors"
)

// Client generates text from a single prompt. Implementations do not retry.
type Client interface {
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Settings are the process-wide generation defaults applied to every call.
type Settings struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
}

// CallOptions are the resolved per-call parameters.
type CallOptions struct {
	Temperature float64
	MaxTokens   int
	// JSON asks providers that support it for a JSON-only response.
	JSON    bool
	UseCase string
}

type Option func(*CallOptions)

// WithTemperature overrides the default temperature for one call.
func WithTemperature(t float64) Option {
	return func(o *CallOptions) { o.Temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(o *CallOptions) {
		if n > 0 {
			o.MaxTokens = n
		}
	}
}

func WithJSON() Option {
	return func(o *CallOptions) { o.JSON = true }
}

// WithUseCase labels the call for logging and metrics.
func WithUseCase(name string) Option {
	return func(o *CallOptions) { o.UseCase = name }
}

// Resolve applies opts over the defaults.
func (s Settings) Resolve(opts ...Option) CallOptions {
	o := CallOptions{Temperature: s.Temperature, MaxTokens: s.MaxTokens}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM not configured")

// PlaceholderClient fails every call; used in dev when no API key is set.
type PlaceholderClient struct{}

func (PlaceholderClient) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return "", ErrNotConfigured
}
