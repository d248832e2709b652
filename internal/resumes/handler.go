package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-optimizer/internal/prompts"
	"job-optimizer/internal/shared/apperr"
	"job-optimizer/internal/shared/server/bind"
	"job-optimizer/internal/shared/server/middleware"
	"job-optimizer/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	MaxUploadSize int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadSize int64) *Handler {
	return &Handler{Svc: svc, MaxUploadSize: maxUploadSize}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/upload", h.upload)
	rg.POST("/resume/analyze", h.analyze)
	rg.POST("/resume/ats-check", h.atsCheck)
}

type analyzeForm struct {
	ResumeText     string `form:"resume_text" json:"resume_text" binding:"required"`
	JobRole        string `form:"job_role" json:"job_role" binding:"required"`
	JobDescription string `form:"job_description" json:"job_description"`
}

type atsForm struct {
	ResumeText     string `form:"resume_text" json:"resume_text" binding:"required"`
	JobDescription string `form:"job_description" json:"job_description"`
}

func (h *Handler) upload(c *gin.Context) {
	const op = "resumes.upload"
	if h.MaxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Fail(c, apperr.Validation(op, "File exceeds the maximum upload size"), "")
			return
		}
		respond.Fail(c, apperr.Validation(op, "file is required"), "")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Fail(c, apperr.Validation(op, "unable to read file"), "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Fail(c, apperr.Validation(op, "unable to read file"), "")
		return
	}

	result, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		respond.Fail(c, err, "Error processing resume")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Set(middleware.UseCaseKey, prompts.UseCaseAnalysis)
	var form analyzeForm
	if err := bind.Form(c, "resumes.analyze", &form); err != nil {
		respond.Fail(c, err, "")
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), form.ResumeText, form.JobRole, form.JobDescription)
	if err != nil {
		respond.Fail(c, err, "Error analyzing resume")
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) atsCheck(c *gin.Context) {
	c.Set(middleware.UseCaseKey, prompts.UseCaseATS)
	var form atsForm
	if err := bind.Form(c, "resumes.ats_check", &form); err != nil {
		respond.Fail(c, err, "")
		return
	}

	score, err := h.Svc.ATSCheck(c.Request.Context(), form.ResumeText, form.JobDescription)
	if err != nil {
		respond.Fail(c, err, "Error checking ATS compatibility")
		return
	}
	respond.OK(c, score)
}
