package prompts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-optimizer/internal/llm"
	"job-optimizer/resume/model"
)

func sampleAnalysis() model.ResumeAnalysis {
	return model.ResumeAnalysis{
		OverallScore:          8,
		Strengths:             []string{"Distributed systems"},
		SkillsToEmphasize:     []string{"Go", "Kubernetes"},
		KeywordsToAdd:         []string{"gRPC", "Terraform"},
		ExperienceToHighlight: []string{"Led migration"},
		GapsToAddress:         []string{},
		ImprovementAreas:      []string{"Quantify impact"},
	}
}

func sampleATS() model.ATSScore {
	return model.ATSScore{
		ATSScore:         72,
		KeywordMatch:     60,
		FormattingIssues: []string{"Tables"},
		MissingKeywords:  []string{"CI/CD"},
		Strengths:        []string{"Standard headings"},
		Recommendations:  []string{"Remove tables", "Add CI/CD"},
	}
}

func sampleResearch() model.CompanyResearch {
	return model.CompanyResearch{
		CompanyOverview:  "Acme builds rockets.",
		MissionAndValues: []string{"Safety", "Speed"},
		RecentNews:       []string{},
		KeyLeadership:    []string{},
		Challenges:       []string{},
		Opportunities:    []string{},
		IndustryPosition: "Leader",
		Culture:          "Fast",
	}
}

func TestAnalysisPrompt(t *testing.T) {
	req := Analysis("RESUME BODY", "Backend Engineer", "")
	assert.Equal(t, UseCaseAnalysis, req.UseCase)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	require.NotNil(t, req.Schema)
	assert.Contains(t, req.Prompt, "Analyze this resume for a Backend Engineer position.")
	assert.Contains(t, req.Prompt, "RESUME BODY")
	assert.Contains(t, req.Prompt, "No specific job description provided")
	assert.Contains(t, req.Prompt, "VALID JSON ONLY")
	assert.NotContains(t, req.Prompt, "{{")

	req = Analysis("R", "Role", "Build APIs in Go")
	assert.Contains(t, req.Prompt, "Build APIs in Go")
	assert.NotContains(t, req.Prompt, "No specific job description provided")
}

func TestATSPromptDefaultsToGeneralAnalysis(t *testing.T) {
	req := ATS("R", "  ")
	assert.Equal(t, UseCaseATS, req.UseCase)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	assert.Contains(t, req.Prompt, "JOB DESCRIPTION:\nGeneral analysis")
}

func TestCompanyResearchPrompt(t *testing.T) {
	req := CompanyResearch("Initech")
	assert.Contains(t, req.Prompt, `Research the company "Initech"`)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
}

func TestRecommendationsPromptEmbedsIndentedJSON(t *testing.T) {
	req, err := Recommendations("SRE", "Acme", sampleAnalysis(), sampleATS(), sampleResearch())
	require.NoError(t, err)
	assert.Equal(t, UseCaseRecommendations, req.UseCase)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	assert.Contains(t, req.Prompt, "applying to Acme for a SRE position")
	assert.Contains(t, req.Prompt, "\"overall_score\": 8")
	assert.Contains(t, req.Prompt, "\"ats_score\": 72")
	assert.Contains(t, req.Prompt, "\"company_overview\": \"Acme builds rockets.\"")
}

func TestFreeTextPrompts(t *testing.T) {
	resume := OptimizedResume("ORIGINAL", "SRE", "Acme", sampleAnalysis(), sampleATS())
	assert.Nil(t, resume.Schema)
	assert.InDelta(t, 0.5, resume.Temperature, 1e-9)
	assert.Contains(t, resume.Prompt, "- Skills to emphasize: Go, Kubernetes")
	assert.Contains(t, resume.Prompt, "- Keywords to add: gRPC, Terraform")
	assert.Contains(t, resume.Prompt, "- ATS recommendations: Remove tables, Add CI/CD")

	recs := model.Recommendations{
		CoverLetterTalkingPoints: []string{"Scale", "Mentoring"},
		CulturalFit:              []string{"Ownership"},
	}
	letter := CoverLetter("SRE", "Acme", sampleResearch(), recs)
	assert.Nil(t, letter.Schema)
	assert.InDelta(t, 0.7, letter.Temperature, 1e-9)
	assert.Contains(t, letter.Prompt, "cover letter for SRE position at Acme")
	assert.Contains(t, letter.Prompt, "- Company values: Safety, Speed")
	assert.Contains(t, letter.Prompt, "- Talking points: Scale, Mentoring")
	assert.Contains(t, letter.Prompt, "- Cultural fit: Ownership")
}

func TestUserTextIsNotReinterpreted(t *testing.T) {
	req := Analysis("my resume mentions {{JOB_ROLE}} literally", "Engineer", "")
	assert.Contains(t, req.Prompt, "my resume mentions {{JOB_ROLE}} literally")
}

// The example object in each JSON template must satisfy its own schema.
func TestTemplateExamplesMatchSchemas(t *testing.T) {
	cases := []struct {
		req llm.Request
		out llm.Validatable
	}{
		{Analysis("r", "role", ""), &model.ResumeAnalysis{}},
		{ATS("r", ""), &model.ATSScore{}},
		{CompanyResearch("c"), &model.CompanyResearch{}},
	}
	recReq, err := Recommendations("role", "c", sampleAnalysis(), sampleATS(), sampleResearch())
	require.NoError(t, err)
	cases = append(cases, struct {
		req llm.Request
		out llm.Validatable
	}{recReq, &model.Recommendations{}})

	for _, tc := range cases {
		example := tc.req.Prompt[strings.LastIndex(tc.req.Prompt, "\n{"):]
		err := llm.Decode("test", example, tc.req.Schema, tc.out)
		assert.NoError(t, err, tc.req.UseCase)
	}
}

func TestAnalysisRoundTripThroughParser(t *testing.T) {
	want := sampleAnalysis()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got model.ResumeAnalysis
	raw := "```json\n" + string(data) + "\n```"
	require.NoError(t, llm.Decode("test", raw, Analysis("", "", "").Schema, &got))
	assert.Equal(t, want, got)
}
