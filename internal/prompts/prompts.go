// Package prompts builds the model prompts for each use case.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"job-optimizer/internal/llm"
	"job-optimizer/resume/model"
)

// Use case names, also used as log and metric labels.
const (
	UseCaseAnalysis        = "resume_analysis"
	UseCaseATS             = "ats_check"
	UseCaseResearch        = "company_research"
	UseCaseRecommendations = "recommendations"
	UseCaseResume          = "optimized_resume"
	UseCaseCoverLetter     = "cover_letter"
)

// Temperatures per use case.
const (
	TemperatureStructured  = 0.3
	TemperatureResume      = 0.5
	TemperatureCoverLetter = 0.7
)

const (
	noJobDescription  = "No specific job description provided"
	generalATSContext = "General analysis"
)

var (
	//go:embed templates/*.txt
	templateFS embed.FS
	//go:embed schemas/*.json
	schemaFS embed.FS

	templates = mustLoadTemplates()

	analysisSchema        = mustSchema(UseCaseAnalysis)
	atsSchema             = mustSchema(UseCaseATS)
	researchSchema        = mustSchema(UseCaseResearch)
	recommendationsSchema = mustSchema(UseCaseRecommendations)
)

// UseCases lists every use case in workflow order.
func UseCases() []string {
	return []string{UseCaseAnalysis, UseCaseATS, UseCaseResearch, UseCaseRecommendations, UseCaseResume, UseCaseCoverLetter}
}

// Analysis builds the resume analysis prompt.
func Analysis(resumeText, jobRole, jobDescription string) llm.Request {
	return llm.Request{
		UseCase:     UseCaseAnalysis,
		Temperature: TemperatureStructured,
		Schema:      analysisSchema,
		Prompt: render(UseCaseAnalysis,
			"{{JOB_ROLE}}", jobRole,
			"{{RESUME_TEXT}}", resumeText,
			"{{JOB_DESCRIPTION}}", orDefault(jobDescription, noJobDescription),
		),
	}
}

// ATS builds the applicant-tracking compatibility prompt.
func ATS(resumeText, jobDescription string) llm.Request {
	return llm.Request{
		UseCase:     UseCaseATS,
		Temperature: TemperatureStructured,
		Schema:      atsSchema,
		Prompt: render(UseCaseATS,
			"{{RESUME_TEXT}}", resumeText,
			"{{JOB_DESCRIPTION}}", orDefault(jobDescription, generalATSContext),
		),
	}
}

func CompanyResearch(companyName string) llm.Request {
	return llm.Request{
		UseCase:     UseCaseResearch,
		Temperature: TemperatureStructured,
		Schema:      researchSchema,
		Prompt:      render(UseCaseResearch, "{{COMPANY_NAME}}", companyName),
	}
}

// Recommendations serializes the earlier results into the prompt as indented JSON.
func Recommendations(jobRole, companyName string, analysis model.ResumeAnalysis, ats model.ATSScore, research model.CompanyResearch) (llm.Request, error) {
	analysisJSON, err := indent(analysis)
	if err != nil {
		return llm.Request{}, fmt.Errorf("encode analysis: %w", err)
	}
	atsJSON, err := indent(ats)
	if err != nil {
		return llm.Request{}, fmt.Errorf("encode ats score: %w", err)
	}
	researchJSON, err := indent(research)
	if err != nil {
		return llm.Request{}, fmt.Errorf("encode company research: %w", err)
	}
	return llm.Request{
		UseCase:     UseCaseRecommendations,
		Temperature: TemperatureStructured,
		Schema:      recommendationsSchema,
		Prompt: render(UseCaseRecommendations,
			"{{COMPANY_NAME}}", companyName,
			"{{JOB_ROLE}}", jobRole,
			"{{ANALYSIS_JSON}}", analysisJSON,
			"{{ATS_JSON}}", atsJSON,
			"{{COMPANY_JSON}}", researchJSON,
		),
	}, nil
}

// OptimizedResume builds the free-text resume rewrite prompt.
func OptimizedResume(resumeText, jobRole, companyName string, analysis model.ResumeAnalysis, ats model.ATSScore) llm.Request {
	return llm.Request{
		UseCase:     UseCaseResume,
		Temperature: TemperatureResume,
		Prompt: render(UseCaseResume,
			"{{JOB_ROLE}}", jobRole,
			"{{COMPANY_NAME}}", companyName,
			"{{RESUME_TEXT}}", resumeText,
			"{{SKILLS_TO_EMPHASIZE}}", join(analysis.SkillsToEmphasize),
			"{{KEYWORDS_TO_ADD}}", join(analysis.KeywordsToAdd),
			"{{ATS_RECOMMENDATIONS}}", join(ats.Recommendations),
		),
	}
}

func CoverLetter(jobRole, companyName string, research model.CompanyResearch, recs model.Recommendations) llm.Request {
	return llm.Request{
		UseCase:     UseCaseCoverLetter,
		Temperature: TemperatureCoverLetter,
		Prompt: render(UseCaseCoverLetter,
			"{{JOB_ROLE}}", jobRole,
			"{{COMPANY_NAME}}", companyName,
			"{{COMPANY_VALUES}}", join(research.MissionAndValues),
			"{{TALKING_POINTS}}", join(recs.CoverLetterTalkingPoints),
			"{{CULTURAL_FIT}}", join(recs.CulturalFit),
		),
	}
}

func render(name string, pairs ...string) string {
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(templates[name]))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func join(items []string) string {
	return strings.Join(items, ", ")
}

func indent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mustLoadTemplates() map[string]string {
	out := make(map[string]string)
	for _, name := range UseCases() {
		data, err := templateFS.ReadFile("templates/" + name + ".txt")
		if err != nil {
			panic(fmt.Sprintf("load prompt template %s: %v", name, err))
		}
		out[name] = string(data)
	}
	return out
}

func mustSchema(name string) *gojsonschema.Schema {
	data, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		panic(fmt.Sprintf("load schema %s: %v", name, err))
	}
	return llm.CompileSchema(name, string(data))
}
