package documents

import (
	"context"
	"errors"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"job-optimizer/internal/llm"
	"job-optimizer/internal/prompts"
	"job-optimizer/internal/shared/apperr"
	"job-optimizer/internal/shared/storage/object"
	"job-optimizer/resume/model"
	"job-optimizer/resume/render"
)

// Renderer writes a document and returns its path.
type Renderer interface {
	Render(ctx context.Context, kind render.Kind, content, companyName string) (string, error)
}

// Service generates the tailored resume and cover letter.
type Service struct {
	LLM      llm.Client
	Renderer Renderer
	// Outputs is the store the renderer writes to; downloads read from it.
	Outputs object.ObjectStore
}

// GenerateInput carries every earlier workflow result.
type GenerateInput struct {
	ResumeText      string
	JobRole         string
	CompanyName     string
	Analysis        model.ResumeAnalysis
	ATSScore        model.ATSScore
	CompanyResearch model.CompanyResearch
	Recommendations model.Recommendations
}

// Generate writes both documents. The two model calls run concurrently, then the two renders;
// any failure fails the whole request.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (model.GeneratedDocuments, error) {
	var out model.GeneratedDocuments

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := llm.GenerateText(gctx, s.LLM,
			prompts.OptimizedResume(in.ResumeText, in.JobRole, in.CompanyName, in.Analysis, in.ATSScore))
		out.OptimizedResume = text
		return err
	})
	g.Go(func() error {
		text, err := llm.GenerateText(gctx, s.LLM,
			prompts.CoverLetter(in.JobRole, in.CompanyName, in.CompanyResearch, in.Recommendations))
		out.CoverLetter = text
		return err
	})
	if err := g.Wait(); err != nil {
		return model.GeneratedDocuments{}, err
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := s.Renderer.Render(gctx, render.KindResume, out.OptimizedResume, in.CompanyName)
		out.ResumeFilePath = path
		return err
	})
	g.Go(func() error {
		path, err := s.Renderer.Render(gctx, render.KindCoverLetter, out.CoverLetter, in.CompanyName)
		out.CoverLetterFilePath = path
		return err
	})
	if err := g.Wait(); err != nil {
		return model.GeneratedDocuments{}, err
	}
	return out, nil
}

// Download opens a generated document by file name.
func (s *Service) Download(ctx context.Context, fileName string) (io.ReadCloser, error) {
	const op = "documents.download"
	if fileName == "" || strings.ContainsAny(fileName, `/\`) || strings.Contains(fileName, "..") {
		return nil, apperr.NotFound(op, "File not found")
	}
	rc, err := s.Outputs.Open(ctx, fileName)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, apperr.NotFound(op, "File not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, op, err, "Error downloading file")
	}
	return rc, nil
}
