package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"job-optimizer/internal/shared/apperr"
	"job-optimizer/internal/shared/util"
)

// TimestampLayout is the filename timestamp, second precision.
const TimestampLayout = "20060102_150405"

// Store is the subset of the local object store the renderer writes through.
type Store interface {
	SaveWithKey(ctx context.Context, storageKey string, r io.Reader) (int64, error)
	Path(storageKey string) (string, error)
}

// Renderer writes generated documents into the output store.
type Renderer struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Renderer {
	return &Renderer{store: store, now: time.Now}
}

// WithClock returns a copy of the renderer using now for timestamps.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	cp := *r
	cp.now = now
	return &cp
}

// FileName is {company}_{label}_{timestamp}.docx. Two renders for the same company and kind
// within one second share a name and the later one replaces the earlier.
func FileName(kind Kind, companyName string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.docx", util.FileNameSegment(companyName), kind.Label(), at.Format(TimestampLayout))
}

// Render lays out content for kind, writes the .docx and returns its path.
func (r *Renderer) Render(ctx context.Context, kind Kind, content, companyName string) (string, error) {
	op := "render." + string(kind)
	at := r.now()
	data, err := BuildDOCX(kind, Layout(kind, content), at)
	if err != nil {
		return "", apperr.Render(op, err, "failed to build document")
	}
	name := FileName(kind, companyName, at)
	if _, err := r.store.SaveWithKey(ctx, name, bytes.NewReader(data)); err != nil {
		return "", apperr.Render(op, err, "failed to write document")
	}
	path, err := r.store.Path(name)
	if err != nil {
		return "", apperr.Render(op, err, "failed to resolve document path")
	}
	return path, nil
}
