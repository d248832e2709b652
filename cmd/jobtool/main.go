// Command jobtool runs the extraction, rendering and prompt steps locally.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"job-optimizer/internal/shared/telemetry"
)

var rootCmd = &cobra.Command{
	Use:           "jobtool",
	Short:         "Local tooling for the job application optimizer",
	Long:          "jobtool extracts resume text, renders documents and builds or runs model prompts without starting the API server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	telemetry.Configure(os.Stderr, os.Getenv("LOG_LEVEL"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
