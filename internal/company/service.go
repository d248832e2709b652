package company

import (
	"context"
	"strings"

	"job-optimizer/internal/llm"
	"job-optimizer/internal/prompts"
	"job-optimizer/internal/shared/apperr"
	"job-optimizer/resume/model"
)

// Service researches target companies through the model.
type Service struct {
	LLM llm.Client
}

func (s *Service) Research(ctx context.Context, companyName string) (model.CompanyResearch, error) {
	if strings.TrimSpace(companyName) == "" {
		return model.CompanyResearch{}, apperr.Validation("company.research", "company_name is required")
	}
	var out model.CompanyResearch
	if err := llm.GenerateJSON(ctx, s.LLM, prompts.CompanyResearch(companyName), &out); err != nil {
		return model.CompanyResearch{}, err
	}
	return out, nil
}
