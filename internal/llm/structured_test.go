package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-optimizer/internal/llm"
	"job-optimizer/internal/llm/llmtest"
	"job-optimizer/internal/shared/apperr"
	"job-optimizer/internal/shared/metrics"
	"job-optimizer/resume/model"
)

var atsSchema = llm.CompileSchema("ats", `{
  "type": "object",
  "required": ["ats_score", "keyword_match", "formatting_issues", "missing_keywords", "strengths", "recommendations"],
  "properties": {
    "ats_score": {"type": "integer"},
    "keyword_match": {"type": "integer"},
    "formatting_issues": {"type": "array", "items": {"type": "string"}},
    "missing_keywords": {"type": "array", "items": {"type": "string"}},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "recommendations": {"type": "array", "items": {"type": "string"}}
  }
}`)

func atsJSON(score, match string) string {
	return `{"ats_score": ` + score + `, "keyword_match": ` + match + `, "formatting_issues": [], "missing_keywords": ["Kubernetes"], "strengths": ["clear"], "recommendations": []}`
}

func TestGenerateJSONDecodesAndValidates(t *testing.T) {
	fake := llmtest.New().Respond("ats_check", "```json\n"+atsJSON("100", "0")+"\n```")

	var out model.ATSScore
	err := llm.GenerateJSON(context.Background(), fake, llm.Request{
		UseCase: "ats_check", Prompt: "p", Temperature: 0.3, Schema: atsSchema,
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, 100, out.ATSScore)
	assert.Equal(t, 0, out.KeywordMatch)
	assert.Equal(t, []string{"Kubernetes"}, out.MissingKeywords)
	assert.NotNil(t, out.FormattingIssues)

	calls := fake.CallsFor("ats_check")
	require.Len(t, calls, 1)
	assert.InDelta(t, 0.3, calls[0].Options.Temperature, 1e-9)
	assert.True(t, calls[0].Options.JSON)
}

func TestGenerateJSONRejectsOutOfRange(t *testing.T) {
	for _, tc := range []struct{ score, match string }{{"101", "50"}, {"-1", "50"}, {"50", "101"}} {
		raw := atsJSON(tc.score, tc.match)
		fake := llmtest.New().Respond("ats_check", raw)
		var out model.ATSScore
		err := llm.GenerateJSON(context.Background(), fake, llm.Request{UseCase: "ats_check", Schema: atsSchema}, &out)
		require.Error(t, err)
		assert.Equal(t, apperr.KindMalformedResponse, apperr.KindOf(err))

		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, raw, ae.Raw)
	}
}

func TestGenerateJSONRejectsMissingField(t *testing.T) {
	fake := llmtest.New().Respond("ats_check", `{"ats_score": 50, "keyword_match": 40}`)
	var out model.ATSScore
	err := llm.GenerateJSON(context.Background(), fake, llm.Request{UseCase: "ats_check", Schema: atsSchema}, &out)
	require.Error(t, err)
	assert.Equal(t, apperr.KindMalformedResponse, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "formatting_issues")
}

func TestGenerateJSONRejectsWrongType(t *testing.T) {
	fake := llmtest.New().Respond("ats_check", atsJSON(`"high"`, "40"))
	var out model.ATSScore
	err := llm.GenerateJSON(context.Background(), fake, llm.Request{UseCase: "ats_check", Schema: atsSchema}, &out)
	assert.Equal(t, apperr.KindMalformedResponse, apperr.KindOf(err))
}

func TestGenerateJSONUnparseable(t *testing.T) {
	fake := llmtest.New().Respond("ats_check", "Sorry, I can't do that.")
	var out model.ATSScore
	err := llm.GenerateJSON(context.Background(), fake, llm.Request{UseCase: "ats_check", Schema: atsSchema}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "llm.ats_check")
}

func TestGenerateUpstreamFailure(t *testing.T) {
	fake := llmtest.New().Fail("cover_letter", errors.New("503 from provider"))

	_, err := llm.GenerateText(context.Background(), fake, llm.Request{UseCase: "cover_letter", Temperature: 0.7})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Contains(t, apperr.PublicMessage(err), "503 from provider")
}

func TestGenerateTextTrimsAndRejectsEmpty(t *testing.T) {
	fake := llmtest.New().Respond("optimized_resume", "\n  JOHN DOE\nEngineer  \n")
	text, err := llm.GenerateText(context.Background(), fake, llm.Request{UseCase: "optimized_resume"})
	require.NoError(t, err)
	assert.Equal(t, "JOHN DOE\nEngineer", text)

	fake.Respond("optimized_resume", "   ")
	_, err = llm.GenerateText(context.Background(), fake, llm.Request{UseCase: "optimized_resume"})
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestPlaceholderIsUpstreamError(t *testing.T) {
	_, err := llm.GenerateText(context.Background(), llm.PlaceholderClient{}, llm.Request{UseCase: "x"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestInstrumentedRecordsMetrics(t *testing.T) {
	reg := metrics.New()
	fake := llmtest.New().Respond("company_research", "{}").Fail("recommendations", errors.New("boom"))
	client := llm.NewInstrumented(fake, llm.Settings{Provider: "gemini", Model: "m", Temperature: 0.7}, reg)

	_, err := client.Generate(context.Background(), "p", llm.WithUseCase("company_research"))
	require.NoError(t, err)
	_, err = client.Generate(context.Background(), "p", llm.WithUseCase("recommendations"))
	require.Error(t, err)

	assert.Equal(t, uint64(1), reg.Calls("company_research", "ok"))
	assert.Equal(t, uint64(1), reg.Calls("recommendations", "upstream_error"))
}

func TestSettingsResolve(t *testing.T) {
	s := llm.Settings{Temperature: 0.7, MaxTokens: 4096}
	o := s.Resolve()
	assert.InDelta(t, 0.7, o.Temperature, 1e-9)
	assert.Equal(t, 4096, o.MaxTokens)

	o = s.Resolve(llm.WithTemperature(0.3), llm.WithMaxTokens(0), llm.WithUseCase("a"))
	assert.InDelta(t, 0.3, o.Temperature, 1e-9)
	assert.Equal(t, 4096, o.MaxTokens)
	assert.Equal(t, "a", o.UseCase)
}
