package render

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind selects the document layout.
type Kind string

const (
	KindResume      Kind = "resume"
	KindCoverLetter Kind = "cover_letter"
)

// Label is the filename segment for the kind.
func (k Kind) Label() string {
	switch k {
	case KindCoverLetter:
		return "Cover_Letter"
	default:
		return "Optimized_Resume"
	}
}

func (k Kind) margin() int {
	if k == KindCoverLetter {
		return CoverLetterMargin
	}
	return ResumeMargin
}

// ParseKind accepts "resume", "cover_letter" and "cover-letter".
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "resume":
		return KindResume, nil
	case "cover_letter", "cover-letter", "coverletter":
		return KindCoverLetter, nil
	default:
		return "", fmt.Errorf("unknown document kind %q", raw)
	}
}

var sectionKeywords = []string{"PROFESSIONAL", "EDUCATION", "EXPERIENCE", "SKILLS", "PROJECTS", "CERTIFICATIONS", "SUMMARY"}

// Paragraph is one rendered line.
type Paragraph struct {
	Text  string
	Style RunStyle
}

// IsSectionHeader reports whether a resume line is rendered as a header: it is entirely
// upper-case (at least one letter, no lower-case letters) or starts with a section keyword.
func IsSectionHeader(line string) bool {
	if isUpper(line) {
		return true
	}
	trimmed := strings.TrimSpace(line)
	for _, kw := range sectionKeywords {
		if strings.HasPrefix(trimmed, kw) {
			return true
		}
	}
	return false
}

func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// Layout splits content into styled paragraphs. Blank lines are dropped.
func Layout(kind Kind, content string) []Paragraph {
	lines := strings.Split(content, "\n")
	out := make([]Paragraph, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		var style RunStyle
		switch {
		case kind == KindCoverLetter:
			style = StyleMap["letterBody"]
		case IsSectionHeader(line):
			style = StyleMap["sectionHeading"]
		default:
			style = StyleMap["body"]
		}
		out = append(out, Paragraph{Text: line, Style: style})
	}
	return out
}
