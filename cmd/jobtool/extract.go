package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"job-optimizer/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf|file.docx>",
	Short: "Print the plain text of a resume file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := extract.ExtractFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
