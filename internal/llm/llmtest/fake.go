// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"job-optimizer/internal/llm"
)

// Call records one Generate invocation.
type Call struct {
	Prompt  string
	Options llm.CallOptions
}

// Fake answers by use case. Unknown use cases return an error.
type Fake struct {
	mu        sync.Mutex
	Responses map[string]string
	Errors    map[string]error
	Calls     []Call
}

func New() *Fake {
	return &Fake{Responses: map[string]string{}, Errors: map[string]error{}}
}

// Respond sets the raw text returned for a use case.
func (f *Fake) Respond(useCase, text string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[useCase] = text
	return f
}

func (f *Fake) Fail(useCase string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[useCase] = err
	return f
}

func (f *Fake) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	o := llm.Settings{}.Resolve(opts...)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Prompt: prompt, Options: o})
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := f.Errors[o.UseCase]; ok {
		return "", err
	}
	if text, ok := f.Responses[o.UseCase]; ok {
		return text, nil
	}
	return "", fmt.Errorf("no scripted response for %q", o.UseCase)
}

// CallsFor returns the recorded calls for a use case.
func (f *Fake) CallsFor(useCase string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.Calls {
		if c.Options.UseCase == useCase {
			out = append(out, c)
		}
	}
	return out
}

var _ llm.Client = (*Fake)(nil)
