package analyses

import (
	"github.com/gin-gonic/gin"

	"job-optimizer/internal/prompts"
	"job-optimizer/internal/shared/server/bind"
	"job-optimizer/internal/shared/server/middleware"
	"job-optimizer/internal/shared/server/respond"
	"job-optimizer/resume/model"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analysis/recommendations", h.recommendations)
}

type recommendationsRequest struct {
	JobRole         string                 `json:"job_role" binding:"required"`
	CompanyName     string                 `json:"company_name" binding:"required"`
	Analysis        *model.ResumeAnalysis  `json:"analysis" binding:"required"`
	ATSScore        *model.ATSScore        `json:"ats_score" binding:"required"`
	CompanyResearch *model.CompanyResearch `json:"company_research" binding:"required"`
}

func (h *Handler) recommendations(c *gin.Context) {
	c.Set(middleware.UseCaseKey, prompts.UseCaseRecommendations)
	var req recommendationsRequest
	if err := bind.JSON(c, "analyses.recommendations", &req); err != nil {
		respond.Fail(c, err, "")
		return
	}

	recs, err := h.Svc.Recommendations(c.Request.Context(), RecommendationsInput{
		JobRole:         req.JobRole,
		CompanyName:     req.CompanyName,
		Analysis:        *req.Analysis,
		ATSScore:        *req.ATSScore,
		CompanyResearch: *req.CompanyResearch,
	})
	if err != nil {
		respond.Fail(c, err, "Error generating recommendations")
		return
	}
	respond.OK(c, recs)
}
