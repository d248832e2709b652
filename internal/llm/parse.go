package llm

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"

	"job-optimizer/internal/shared/apperr"
)

var (
	leadingFence  = regexp.MustCompile("(?i)^```[ \t]*(json)?[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\r?\n?[ \t]*```$")

	errNotObject = errors.New("top-level JSON value is not an object")
)

// StripFences removes a leading ```json (or bare ```) marker and a trailing ``` marker.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseJSON recovers a JSON object from model output. It tries a strict parse of the
// unfenced text first, then the span from the first '{' to the last '}'.
func ParseJSON(raw string) (map[string]any, error) {
	text := StripFences(raw)

	obj, strictErr := decodeObject(text)
	if strictErr == nil {
		return obj, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if obj, err := decodeObject(text[start : end+1]); err == nil {
			return obj, nil
		}
	}
	return nil, apperr.Malformed("llm.parse_json", raw, strictErr, "model response is not valid JSON")
}

func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON value")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}
