package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"job-optimizer/internal/extract"
	"job-optimizer/internal/shared/storage/object/local"
	"job-optimizer/resume/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <text-file>",
	Short: "Render a text file into a .docx resume or cover letter",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var (
	renderKind    string
	renderCompany string
	renderOut     string
	renderDump    bool
)

func init() {
	renderCmd.Flags().StringVar(&renderKind, "kind", "resume", "Document kind: resume or cover-letter")
	renderCmd.Flags().StringVar(&renderCompany, "company", "", "Company name used in the file name")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "outputs", "Output directory")
	renderCmd.Flags().BoolVar(&renderDump, "dump", false, "Read the document back and print its paragraphs")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	kind, err := render.ParseKind(renderKind)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	path, err := render.New(local.New(renderOut)).Render(cmd.Context(), kind, string(content), renderCompany)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if renderDump {
		text, err := extract.ExtractFile(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("failed to read back %s: %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}
	return nil
}
