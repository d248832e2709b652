package company

import (
	"github.com/gin-gonic/gin"

	"job-optimizer/internal/prompts"
	"job-optimizer/internal/shared/server/bind"
	"job-optimizer/internal/shared/server/middleware"
	"job-optimizer/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches company routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/company/research", h.research)
}

type researchForm struct {
	CompanyName string `form:"company_name" json:"company_name" binding:"required"`
}

func (h *Handler) research(c *gin.Context) {
	c.Set(middleware.UseCaseKey, prompts.UseCaseResearch)
	var form researchForm
	if err := bind.Form(c, "company.research", &form); err != nil {
		respond.Fail(c, err, "")
		return
	}

	research, err := h.Svc.Research(c.Request.Context(), form.CompanyName)
	if err != nil {
		respond.Fail(c, err, "Error researching company")
		return
	}
	respond.OK(c, research)
}
