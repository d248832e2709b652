package analyses

import (
	"context"

	"job-optimizer/internal/llm"
	"job-optimizer/internal/prompts"
	"job-optimizer/internal/shared/apperr"
	"job-optimizer/resume/model"
)

// Service combines the earlier analysis results into recommendations.
type Service struct {
	LLM llm.Client
}

// RecommendationsInput carries the results of the earlier workflow steps.
type RecommendationsInput struct {
	JobRole         string
	CompanyName     string
	Analysis        model.ResumeAnalysis
	ATSScore        model.ATSScore
	CompanyResearch model.CompanyResearch
}

func (s *Service) Recommendations(ctx context.Context, in RecommendationsInput) (model.Recommendations, error) {
	req, err := prompts.Recommendations(in.JobRole, in.CompanyName, in.Analysis, in.ATSScore, in.CompanyResearch)
	if err != nil {
		return model.Recommendations{}, apperr.Wrap(apperr.KindInternal, "analyses.recommendations", err, "failed to build prompt")
	}
	var out model.Recommendations
	if err := llm.GenerateJSON(ctx, s.LLM, req, &out); err != nil {
		return model.Recommendations{}, err
	}
	return out, nil
}
