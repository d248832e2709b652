// Package bootstraptest builds a fully wired App backed by a scripted model client.
package bootstraptest

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"job-optimizer/internal/bootstrap"
	"job-optimizer/internal/llm/llmtest"
	"job-optimizer/internal/shared/config"
)

// Clock is the fixed time used for generated file names.
var Clock = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

// ErrorBody mirrors the error envelope.
type ErrorBody struct {
	Error      bool   `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// Config returns defaults pointed at temporary upload and output directories.
func Config(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.OutputDir = filepath.Join(dir, "outputs")
	cfg.LLMModel = "test-model"
	return cfg
}

// NewApp builds the app with fake as the model client. mutate may adjust the config first.
func NewApp(t *testing.T, fake *llmtest.Fake, mutate ...func(*config.Config)) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := Config(t)
	for _, m := range mutate {
		m(&cfg)
	}
	app, err := bootstrap.Build(context.Background(), cfg,
		bootstrap.WithLLM(fake),
		bootstrap.WithClock(func() time.Time { return Clock }),
	)
	require.NoError(t, err)
	return app
}

// PostForm sends url-encoded form fields.
func PostForm(t *testing.T, h http.Handler, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

// PostJSON sends body encoded as JSON.
func PostJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

// PostFile sends a multipart upload in the "file" field.
func PostFile(t *testing.T, h http.Handler, path, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

// Get issues a GET request.
func Get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

// Decode unmarshals the response body into out.
func Decode(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), out), resp.Body.String())
}

// DecodeError decodes and sanity-checks the error envelope.
func DecodeError(t *testing.T, resp *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	Decode(t, resp, &body)
	require.True(t, body.Error, resp.Body.String())
	require.Equal(t, resp.Code, body.StatusCode)
	return body
}

// Canned model responses that satisfy each schema.
const (
	AnalysisJSON = `{"overall_score": 7.5, "strengths": ["Go services", "Mentoring"], "skills_to_emphasize": ["Go", "Kubernetes"], "keywords_to_add": ["gRPC"], "experience_to_highlight": ["Led payments migration"], "gaps_to_address": [], "improvement_areas": ["Quantify impact"]}`
	ATSJSON      = `{"ats_score": 81, "keyword_match": 64, "formatting_issues": ["Tables in header"], "missing_keywords": ["Terraform"], "strengths": ["Standard headings"], "recommendations": ["Remove tables", "Add Terraform"]}`
	ResearchJSON = `{"company_overview": "Acme builds developer tools.", "mission_and_values": ["Craft", "Ownership"], "recent_news": ["Series C"], "key_leadership": ["Jane Smith, CEO"], "challenges": ["Competition"], "opportunities": ["AI tooling"], "industry_position": "Challenger", "culture": "Remote-first"}`
	RecsJSON     = `{"resume_alignment": ["Lead with platform work"], "cover_letter_talking_points": ["Scaled payments"], "cultural_fit": ["Ownership"], "interview_questions": ["Tell me about an outage"], "preparation_tips": ["Review system design"], "next_steps": ["Apply this week"]}`
)
