package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/assistant"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job posting",
	Long:  "Scrapes the job description (or uses a pasted one), asks the model for a match score with suggestions and keyword gaps, and prints the normalized result.",
	RunE:  runAnalyze,
}

var (
	analyzeResumeFile string
	analyzeJobURL     string
	analyzeJDFile     string
	analyzeOutputFile string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to resume text file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobURL, "url", "u", "", "Job posting URL")
	analyzeCmd.Flags().StringVarP(&analyzeJDFile, "description", "d", "", "Path to a pasted job description file (skips scraping when long enough)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := analyzeCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	resumeText, err := readTextFile(analyzeResumeFile)
	if err != nil {
		return err
	}
	jobDescription := ""
	if analyzeJDFile != "" {
		if jobDescription, err = readTextFile(analyzeJDFile); err != nil {
			return err
		}
	}

	svc, err := a.service(cmd.Context())
	if err != nil {
		return err
	}

	result := svc.AnalyzeResume(cmd.Context(), assistant.AnalyzeRequest{
		ResumeText:     resumeText,
		JobURL:         analyzeJobURL,
		JobDescription: jobDescription,
	})
	return writeJSON(analyzeOutputFile, result)
}
