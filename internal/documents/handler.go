package documents

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-optimizer/internal/shared/server/bind"
	"job-optimizer/internal/shared/server/respond"
	"job-optimizer/resume/model"
	"job-optimizer/resume/render"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/generate", h.generate)
	rg.GET("/documents/download/:filename", h.download)
}

type generateRequest struct {
	ResumeText      string                 `json:"resume_text" binding:"required"`
	JobRole         string                 `json:"job_role" binding:"required"`
	CompanyName     string                 `json:"company_name" binding:"required"`
	Analysis        *model.ResumeAnalysis  `json:"analysis" binding:"required"`
	ATSScore        *model.ATSScore        `json:"ats_score" binding:"required"`
	CompanyResearch *model.CompanyResearch `json:"company_research" binding:"required"`
	Recommendations *model.Recommendations `json:"recommendations" binding:"required"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := bind.JSON(c, "documents.generate", &req); err != nil {
		respond.Fail(c, err, "")
		return
	}

	docs, err := h.Svc.Generate(c.Request.Context(), GenerateInput{
		ResumeText:      req.ResumeText,
		JobRole:         req.JobRole,
		CompanyName:     req.CompanyName,
		Analysis:        *req.Analysis,
		ATSScore:        *req.ATSScore,
		CompanyResearch: *req.CompanyResearch,
		Recommendations: *req.Recommendations,
	})
	if err != nil {
		respond.Fail(c, err, "Error generating documents")
		return
	}
	respond.OK(c, docs)
}

func (h *Handler) download(c *gin.Context) {
	fileName := c.Param("filename")
	body, err := h.Svc.Download(c.Request.Context(), fileName)
	if err != nil {
		respond.Fail(c, err, "")
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, render.ContentType, body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, fileName),
	})
}
