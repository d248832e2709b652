package llm

import (
	"context"
	"time"

	"job-optimizer/internal/shared/apperr"
	"job-optimizer/internal/shared/metrics"
	"job-optimizer/internal/shared/telemetry"
)

// Instrumented wraps a Client with llm.call logging and per-use-case metrics.
type Instrumented struct {
	Client   Client
	Settings Settings
	Metrics  *metrics.Registry
	now      func() time.Time
}

func NewInstrumented(c Client, settings Settings, reg *metrics.Registry) *Instrumented {
	return &Instrumented{Client: c, Settings: settings, Metrics: reg, now: time.Now}
}

func (i *Instrumented) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	resolved := i.Settings.Resolve(opts...)
	useCase := resolved.UseCase
	if useCase == "" {
		useCase = "unlabeled"
	}
	now := i.now
	if now == nil {
		now = time.Now
	}
	start := now()
	text, err := i.Client.Generate(ctx, prompt, opts...)
	elapsed := now().Sub(start)

	outcome := "ok"
	if err != nil {
		outcome = string(apperr.KindUpstream)
	}
	i.Metrics.ObserveCall(useCase, outcome, float64(elapsed.Milliseconds()))

	fields := map[string]any{
		"provider":    i.Settings.Provider,
		"model":       i.Settings.Model,
		"use_case":    useCase,
		"temperature": resolved.Temperature,
		"prompt_len":  len(prompt),
		"duration_ms": elapsed.Milliseconds(),
		"outcome":     outcome,
	}
	if err != nil {
		fields["error"] = err.Error()
		telemetry.Error("llm.call", fields)
		return "", err
	}
	fields["response_len"] = len(text)
	telemetry.Info("llm.call", fields)
	return text, nil
}

var _ Client = (*Instrumented)(nil)
