package util

import (
	"errors"
	"strings"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// FileNameSegment turns free text such as a company name into a filename segment.
// Spaces become underscores; path separators and dots that could escape a directory are replaced too.
func FileNameSegment(s string) string {
	s = strings.TrimSpace(s)
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "..", "_", "\x00", "")
	s = r.Replace(s)
	if s == "" {
		return "document"
	}
	return s
}
