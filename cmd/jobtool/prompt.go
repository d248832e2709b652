package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"job-optimizer/internal/bootstrap"
	"job-optimizer/internal/extract"
	"job-optimizer/internal/llm"
	"job-optimizer/internal/prompts"
	"job-optimizer/internal/shared/config"
	"job-optimizer/resume/model"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <use-case>",
	Short: "Print the prompt for a use case, optionally sending it to the configured model",
	Long: "Builds the prompt for one of: " + strings.Join(prompts.UseCases(), ", ") + ".\n" +
		"Earlier workflow results are read from --inputs, a JSON object with analysis, ats_score,\n" +
		"company_research and recommendations keys.",
	Args: cobra.ExactArgs(1),
	RunE: runPrompt,
}

var (
	promptResume  string
	promptRole    string
	promptCompany string
	promptJD      string
	promptInputs  string
	promptRun     bool
)

func init() {
	promptCmd.Flags().StringVar(&promptResume, "resume", "", "Resume file (.pdf, .docx or plain text)")
	promptCmd.Flags().StringVar(&promptRole, "role", "", "Target job role")
	promptCmd.Flags().StringVar(&promptCompany, "company", "", "Target company name")
	promptCmd.Flags().StringVar(&promptJD, "jd", "", "Job description file")
	promptCmd.Flags().StringVar(&promptInputs, "inputs", "", "JSON file with earlier results")
	promptCmd.Flags().BoolVar(&promptRun, "run", false, "Send the prompt to the configured provider and print the result")

	rootCmd.AddCommand(promptCmd)
}

type workflowInputs struct {
	Analysis        model.ResumeAnalysis  `json:"analysis"`
	ATSScore        model.ATSScore        `json:"ats_score"`
	CompanyResearch model.CompanyResearch `json:"company_research"`
	Recommendations model.Recommendations `json:"recommendations"`
}

func runPrompt(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	resumeText, err := readText(cmd, promptResume)
	if err != nil {
		return err
	}
	jobDescription, err := readText(cmd, promptJD)
	if err != nil {
		return err
	}
	var in workflowInputs
	if promptInputs != "" {
		data, err := os.ReadFile(promptInputs)
		if err != nil {
			return fmt.Errorf("failed to read inputs: %w", err)
		}
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("failed to parse inputs: %w", err)
		}
	}

	var (
		req llm.Request
		out llm.Validatable
	)
	switch args[0] {
	case prompts.UseCaseAnalysis:
		req, out = prompts.Analysis(resumeText, promptRole, jobDescription), &model.ResumeAnalysis{}
	case prompts.UseCaseATS:
		req, out = prompts.ATS(resumeText, jobDescription), &model.ATSScore{}
	case prompts.UseCaseResearch:
		req, out = prompts.CompanyResearch(promptCompany), &model.CompanyResearch{}
	case prompts.UseCaseRecommendations:
		req, err = prompts.Recommendations(promptRole, promptCompany, in.Analysis, in.ATSScore, in.CompanyResearch)
		if err != nil {
			return err
		}
		out = &model.Recommendations{}
	case prompts.UseCaseResume:
		req = prompts.OptimizedResume(resumeText, promptRole, promptCompany, in.Analysis, in.ATSScore)
	case prompts.UseCaseCoverLetter:
		req = prompts.CoverLetter(promptRole, promptCompany, in.CompanyResearch, in.Recommendations)
	default:
		return fmt.Errorf("unknown use case %q (want one of %s)", args[0], strings.Join(prompts.UseCases(), ", "))
	}

	w := cmd.OutOrStdout()
	if !promptRun {
		fmt.Fprintf(w, "# use case: %s, temperature: %.1f\n", req.UseCase, req.Temperature)
		fmt.Fprintln(w, req.Prompt)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := bootstrap.NewLLM(ctx, cfg)
	if err != nil {
		return err
	}

	if out == nil {
		text, err := llm.GenerateText(ctx, client, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, text)
		return nil
	}
	if err := llm.GenerateJSON(ctx, client, req, out); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(encoded))
	return nil
}

func readText(cmd *cobra.Command, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return extract.ExtractFile(cmd.Context(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
