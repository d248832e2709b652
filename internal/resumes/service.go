package resumes

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"job-optimizer/internal/extract"
	"job-optimizer/internal/llm"
	"job-optimizer/internal/prompts"
	"job-optimizer/internal/shared/apperr"
	"job-optimizer/internal/shared/storage/object"
	"job-optimizer/internal/shared/telemetry"
	"job-optimizer/resume/model"
)

// Service handles resume upload, analysis and ATS checks.
type Service struct {
	LLM llm.Client
	// Uploads archives the original file. Optional.
	Uploads object.ObjectStore
}

// UploadResult is the response to a successful upload.
type UploadResult struct {
	Success    bool   `json:"success"`
	FileName   string `json:"filename"`
	ResumeText string `json:"resume_text"`
	TextLength int    `json:"text_length"`
}

// Upload extracts the text of an uploaded PDF resume.
func (s *Service) Upload(ctx context.Context, fileName string, data []byte) (UploadResult, error) {
	const op = "resumes.upload"
	if !strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return UploadResult{}, apperr.Validation(op, "Only PDF files are supported")
	}

	s.archive(ctx, fileName, data)

	text, err := extract.ExtractText(ctx, data)
	if err != nil {
		return UploadResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		return UploadResult{}, apperr.Validation(op, "No text could be extracted from the PDF")
	}
	return UploadResult{
		Success:    true,
		FileName:   fileName,
		ResumeText: text,
		TextLength: len([]rune(text)),
	}, nil
}

// archive keeps a copy of the upload. Failures are logged and do not fail the request.
func (s *Service) archive(ctx context.Context, fileName string, data []byte) {
	if s.Uploads == nil {
		return
	}
	key, size, mimeType, err := s.Uploads.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Warn("resumes.archive.failed", map[string]any{
			"file_name": fileName,
			"err":       err.Error(),
		})
		return
	}
	telemetry.Debug("resumes.archived", map[string]any{
		"storage_key": key,
		"size_bytes":  size,
		"mime_type":   mimeType,
	})
}

// Analyze scores the resume against a job role.
func (s *Service) Analyze(ctx context.Context, resumeText, jobRole, jobDescription string) (model.ResumeAnalysis, error) {
	var out model.ResumeAnalysis
	if err := llm.GenerateJSON(ctx, s.LLM, prompts.Analysis(resumeText, jobRole, jobDescription), &out); err != nil {
		return model.ResumeAnalysis{}, err
	}
	return out, nil
}

// ATSCheck reports applicant-tracking compatibility.
func (s *Service) ATSCheck(ctx context.Context, resumeText, jobDescription string) (model.ATSScore, error) {
	var out model.ATSScore
	if err := llm.GenerateJSON(ctx, s.LLM, prompts.ATS(resumeText, jobDescription), &out); err != nil {
		return model.ATSScore{}, err
	}
	return out, nil
}
