package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"job-optimizer/internal/shared/apperr"
)

// Request is one prompt bound to its use case, temperature and, for JSON calls, its shape.
type Request struct {
	UseCase     string
	Prompt      string
	Temperature float64
	// Schema is nil for free-text calls.
	Schema *gojsonschema.Schema
}

// Validatable is implemented by the typed entities decoded from model output.
type Validatable interface {
	Validate() error
}

// CompileSchema compiles a JSON schema document, panicking on error. Intended for package-level vars.
func CompileSchema(name, doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return s
}

// GenerateText runs a free-text request and returns the trimmed response.
func GenerateText(ctx context.Context, c Client, req Request) (string, error) {
	op := "llm." + req.UseCase
	text, err := c.Generate(ctx, req.Prompt, WithTemperature(req.Temperature), WithUseCase(req.UseCase))
	if err != nil {
		return "", asUpstream(op, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.Upstream(op, errors.New("empty response"), "model returned no text")
	}
	return text, nil
}

// GenerateJSON runs a JSON request and decodes the recovered object into out.
func GenerateJSON(ctx context.Context, c Client, req Request, out Validatable) error {
	op := "llm." + req.UseCase
	raw, err := c.Generate(ctx, req.Prompt, WithTemperature(req.Temperature), WithUseCase(req.UseCase), WithJSON())
	if err != nil {
		return asUpstream(op, err)
	}
	return Decode(op, raw, req.Schema, out)
}

// Decode parses raw model output, checks it against schema, then decodes and validates it.
// Every failure is a malformed-response error carrying raw.
func Decode(op, raw string, schema *gojsonschema.Schema, out Validatable) error {
	doc, err := ParseJSON(raw)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			ae.Op = op
		}
		return err
	}
	if schema != nil {
		if err := CheckShape(schema, doc); err != nil {
			return apperr.Malformed(op, raw, err, "model response does not match the expected shape")
		}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return apperr.Malformed(op, raw, err, "model response could not be re-encoded")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Malformed(op, raw, err, "model response does not match the expected shape")
	}
	if err := out.Validate(); err != nil {
		return apperr.Malformed(op, raw, err, "model response failed validation")
	}
	return nil
}

// CheckShape validates a decoded document against schema.
func CheckShape(schema *gojsonschema.Schema, doc map[string]any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(strings.Join(msgs, "; "))
}

func asUpstream(op string, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Upstream(op, err, "model call did not complete")
	}
	return apperr.Upstream(op, err, "model call failed")
}
