package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"job-optimizer/internal/shared/apperr"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ExtractText returns the text of every page of a PDF in order, separated by a blank line.
// Invalid PDFs and PDFs without pages fail with an extraction error; an empty text layer does not.
func ExtractText(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// The PDF parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperr.Extraction("extract.pdf", fmt.Errorf("%v", r), "could not read PDF")
		}
	}()

	if len(data) == 0 {
		return "", apperr.Extraction("extract.pdf", errors.New("empty file"), "could not read PDF")
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperr.Extraction("extract.pdf", err, "could not read PDF")
	}
	numPages := reader.NumPage()
	if numPages == 0 {
		return "", apperr.Extraction("extract.pdf", errors.New("no pages"), "PDF has no pages")
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", apperr.Extraction("extract.pdf", fmt.Errorf("page %d: %w", i, err), "could not read PDF")
		}
		pages = append(pages, pageText)
	}
	return strings.TrimSpace(strings.Join(pages, "\n\n")), nil
}

// ExtractDOCX returns the paragraph text of a .docx document, one paragraph per line.
func ExtractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.Extraction("extract.docx", errors.New("empty file"), "could not read DOCX")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperr.Extraction("extract.docx", err, "could not read DOCX")
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent())
}

// ExtractFile dispatches on the file extension.
func ExtractFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ExtractText(ctx, data)
	case ".docx":
		return ExtractDOCX(data)
	default:
		return "", apperr.Validation("extract.file", fmt.Sprintf("unsupported file type: %s", filepath.Ext(path)))
	}
}

func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", apperr.Extraction("extract.docx", err, "could not read DOCX")
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
