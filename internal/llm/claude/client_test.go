package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-optimizer/internal/llm"
)

func TestGenerateReturnsJoinedText(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-7-sonnet-latest",
			"content":[{"type":"text","text":"Dear Hiring Manager,"},{"type":"text","text":"\nThank you."}],
			"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`))
	}))
	defer server.Close()

	client, err := NewClient(llm.Settings{Model: "claude-3-7-sonnet-latest", Temperature: 0.7, MaxTokens: 1000},
		Options{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "write", llm.WithTemperature(0.5))
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,\nThank you.", text)

	assert.Equal(t, "claude-3-7-sonnet-latest", got["model"])
	assert.EqualValues(t, 1000, got["max_tokens"])
	assert.InDelta(t, 0.5, got["temperature"], 1e-9)
}

func TestGenerateDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
	}))
	defer server.Close()

	client, err := NewClient(llm.Settings{Model: "m"}, Options{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude messages")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"max_tokens","usage":{"input_tokens":1,"output_tokens":0}}`))
	}))
	defer server.Close()

	client, err := NewClient(llm.Settings{Model: "m"}, Options{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}
