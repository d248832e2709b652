package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ResumeAnalysis scores a resume against a job role.
type ResumeAnalysis struct {
	OverallScore          float64  `json:"overall_score" validate:"gte=1,lte=10"`
	Strengths             []string `json:"strengths" validate:"required"`
	SkillsToEmphasize     []string `json:"skills_to_emphasize" validate:"required"`
	KeywordsToAdd         []string `json:"keywords_to_add" validate:"required"`
	ExperienceToHighlight []string `json:"experience_to_highlight" validate:"required"`
	GapsToAddress         []string `json:"gaps_to_address" validate:"required"`
	ImprovementAreas      []string `json:"improvement_areas" validate:"required"`
}

// ATSScore is the applicant-tracking compatibility report.
type ATSScore struct {
	ATSScore         int      `json:"ats_score" validate:"gte=0,lte=100"`
	KeywordMatch     int      `json:"keyword_match" validate:"gte=0,lte=100"`
	FormattingIssues []string `json:"formatting_issues" validate:"required"`
	MissingKeywords  []string `json:"missing_keywords" validate:"required"`
	Strengths        []string `json:"strengths" validate:"required"`
	Recommendations  []string `json:"recommendations" validate:"required"`
}

type CompanyResearch struct {
	CompanyOverview  string   `json:"company_overview"`
	MissionAndValues []string `json:"mission_and_values" validate:"required"`
	RecentNews       []string `json:"recent_news" validate:"required"`
	KeyLeadership    []string `json:"key_leadership" validate:"required"`
	Challenges       []string `json:"challenges" validate:"required"`
	Opportunities    []string `json:"opportunities" validate:"required"`
	IndustryPosition string   `json:"industry_position"`
	Culture          string   `json:"culture"`
}

type Recommendations struct {
	ResumeAlignment          []string `json:"resume_alignment" validate:"required"`
	CoverLetterTalkingPoints []string `json:"cover_letter_talking_points" validate:"required"`
	CulturalFit              []string `json:"cultural_fit" validate:"required"`
	InterviewQuestions       []string `json:"interview_questions" validate:"required"`
	PreparationTips          []string `json:"preparation_tips" validate:"required"`
	NextSteps                []string `json:"next_steps" validate:"required"`
}

// GeneratedDocuments is the result of document generation. File paths are empty when rendering was skipped.
type GeneratedDocuments struct {
	OptimizedResume     string `json:"optimized_resume"`
	CoverLetter         string `json:"cover_letter"`
	ResumeFilePath      string `json:"resume_file_path,omitempty"`
	CoverLetterFilePath string `json:"cover_letter_file_path,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (a ResumeAnalysis) Validate() error  { return check(a) }
func (a ATSScore) Validate() error        { return check(a) }
func (c CompanyResearch) Validate() error { return check(c) }
func (r Recommendations) Validate() error { return check(r) }

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := jsonName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be >= %s (got %v)", field, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s (got %v)", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func jsonName(fe validator.FieldError) string {
	if fe.Field() != "" {
		return fe.Field()
	}
	return fe.StructField()
}
