package resumes_test

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bt "job-optimizer/internal/bootstrap/bootstraptest"
	"job-optimizer/internal/extract/pdftest"
	"job-optimizer/internal/llm/llmtest"
	"job-optimizer/internal/prompts"
	"job-optimizer/internal/resumes"
	"job-optimizer/internal/shared/config"
	"job-optimizer/resume/model"
)

func TestUploadThenAnalyze(t *testing.T) {
	fake := llmtest.New().Respond(prompts.UseCaseAnalysis, "```json\n"+bt.AnalysisJSON+"\n```")
	app := bt.NewApp(t, fake)

	resp := bt.PostFile(t, app.Router, "/api/resume/upload", "resume.pdf",
		pdftest.Build(pdftest.Page{"John Doe", "Software Engineer"}))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var uploaded resumes.UploadResult
	bt.Decode(t, resp, &uploaded)
	assert.True(t, uploaded.Success)
	assert.Equal(t, "resume.pdf", uploaded.FileName)
	assert.Contains(t, uploaded.ResumeText, "John Doe")
	assert.Greater(t, uploaded.TextLength, 0)

	resp = bt.PostForm(t, app.Router, "/api/resume/analyze", map[string]string{
		"resume_text": uploaded.ResumeText,
		"job_role":    "Software Engineer",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var analysis model.ResumeAnalysis
	bt.Decode(t, resp, &analysis)
	assert.GreaterOrEqual(t, analysis.OverallScore, 1.0)
	assert.LessOrEqual(t, analysis.OverallScore, 10.0)
	assert.NotEmpty(t, analysis.Strengths)
	assert.NotNil(t, analysis.GapsToAddress)

	calls := fake.CallsFor(prompts.UseCaseAnalysis)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "John Doe")
	assert.Contains(t, calls[0].Prompt, "Software Engineer position")
	assert.Contains(t, calls[0].Prompt, "No specific job description provided")
	assert.InDelta(t, 0.3, calls[0].Options.Temperature, 1e-9)
}

func TestUploadArchivesOriginal(t *testing.T) {
	app := bt.NewApp(t, llmtest.New())
	resp := bt.PostFile(t, app.Router, "/api/resume/upload", "my resume.pdf", pdftest.Build(pdftest.Page{"Jane Roe"}))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	entries, err := os.ReadDir(app.Uploads.BaseDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_my resume.pdf"), entries[0].Name())
}

func TestUploadRejectsNonPDF(t *testing.T) {
	app := bt.NewApp(t, llmtest.New())
	resp := bt.PostFile(t, app.Router, "/api/resume/upload", "resume.docx", []byte("PK\x03\x04"))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	body := bt.DecodeError(t, resp)
	assert.Equal(t, "Only PDF files are supported", body.Message)
}

func TestUploadRejectsEmptyText(t *testing.T) {
	app := bt.NewApp(t, llmtest.New())
	resp := bt.PostFile(t, app.Router, "/api/resume/upload", "scan.pdf", pdftest.Build(pdftest.Page{}))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	body := bt.DecodeError(t, resp)
	assert.Equal(t, "No text could be extracted from the PDF", body.Message)
}

func TestUploadRejectsCorruptPDF(t *testing.T) {
	app := bt.NewApp(t, llmtest.New())
	resp := bt.PostFile(t, app.Router, "/api/resume/upload", "broken.pdf", []byte("definitely not a pdf"))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	bt.DecodeError(t, resp)
}

func TestUploadRequiresFile(t *testing.T) {
	app := bt.NewApp(t, llmtest.New())
	resp := bt.PostForm(t, app.Router, "/api/resume/upload", map[string]string{"x": "y"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "file is required", bt.DecodeError(t, resp).Message)
}

func TestUploadEnforcesMaxSize(t *testing.T) {
	app := bt.NewApp(t, llmtest.New(), func(c *config.Config) { c.MaxUploadSize = 1024 })
	big := bytes.Repeat([]byte("a"), 8*1024)
	resp := bt.PostFile(t, app.Router, "/api/resume/upload", "big.pdf", big)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	bt.DecodeError(t, resp)
}

func TestAnalyzeRequiresFields(t *testing.T) {
	fake := llmtest.New()
	app := bt.NewApp(t, fake)
	resp := bt.PostForm(t, app.Router, "/api/resume/analyze", map[string]string{"resume_text": "text"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "job_role is required", bt.DecodeError(t, resp).Message)
	assert.Empty(t, fake.Calls)
}

func TestAnalyzeRejectsOutOfRangeScore(t *testing.T) {
	raw := strings.Replace(bt.AnalysisJSON, "7.5", "11", 1)
	app := bt.NewApp(t, llmtest.New().Respond(prompts.UseCaseAnalysis, raw))
	resp := bt.PostForm(t, app.Router, "/api/resume/analyze", map[string]string{
		"resume_text": "text", "job_role": "SRE",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	body := bt.DecodeError(t, resp)
	assert.True(t, strings.HasPrefix(body.Message, "Error analyzing resume: "), body.Message)
	assert.Contains(t, body.Message, "overall_score")
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	fake := llmtest.New().Fail(prompts.UseCaseAnalysis, errors.New("resource exhausted"))
	app := bt.NewApp(t, fake)
	resp := bt.PostForm(t, app.Router, "/api/resume/analyze", map[string]string{
		"resume_text": "text", "job_role": "SRE",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	body := bt.DecodeError(t, resp)
	assert.Contains(t, body.Message, "Error analyzing resume")
	assert.Contains(t, body.Message, "resource exhausted")
	assert.Equal(t, uint64(1), app.Metrics.Calls(prompts.UseCaseAnalysis, "upstream_error"))
}

func TestATSCheckDefaultsJobDescription(t *testing.T) {
	fake := llmtest.New().Respond(prompts.UseCaseATS, "Here you go:\n"+bt.ATSJSON+"\nGood luck!")
	app := bt.NewApp(t, fake)
	resp := bt.PostForm(t, app.Router, "/api/resume/ats-check", map[string]string{"resume_text": "RESUME"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var score model.ATSScore
	bt.Decode(t, resp, &score)
	assert.Equal(t, 81, score.ATSScore)
	assert.Equal(t, 64, score.KeywordMatch)
	assert.Equal(t, []string{"Terraform"}, score.MissingKeywords)

	calls := fake.CallsFor(prompts.UseCaseATS)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "General analysis")
}

func TestATSCheckMalformedResponse(t *testing.T) {
	app := bt.NewApp(t, llmtest.New().Respond(prompts.UseCaseATS, "I cannot score this resume."))
	resp := bt.PostForm(t, app.Router, "/api/resume/ats-check", map[string]string{"resume_text": "RESUME"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, bt.DecodeError(t, resp).Message, "Error checking ATS compatibility")
}
