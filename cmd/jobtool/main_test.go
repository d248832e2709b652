package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-optimizer/internal/extract/pdftest"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderWithDump(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(input, []byte("SUMMARY\nBuilds reliable systems.\n"), 0o644))

	out, err := execute(t, "render", "--kind", "resume", "--company", "Acme Corp", "--out", dir, "--dump", input)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(filepath.Base(lines[0]), "Acme_Corp_Optimized_Resume_"), lines[0])
	assert.FileExists(t, lines[0])
	assert.Contains(t, out, "Builds reliable systems.")
}

func TestRenderRejectsUnknownKind(t *testing.T) {
	_, err := execute(t, "render", "--kind", "memo", "--out", t.TempDir(), "missing.txt")
	assert.Error(t, err)
	renderKind = "resume"
}

func TestExtractPrintsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, pdftest.Build(pdftest.Page{"Ada Lovelace"}), 0o644))

	out, err := execute(t, "extract", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
}

func TestPromptPrintsWithoutRunning(t *testing.T) {
	out, err := execute(t, "prompt", "company_research", "--company", "Initech")
	require.NoError(t, err)
	assert.Contains(t, out, "# use case: company_research, temperature: 0.3")
	assert.Contains(t, out, `"Initech"`)
}

func TestPromptUnknownUseCase(t *testing.T) {
	_, err := execute(t, "prompt", "horoscope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown use case")
}
