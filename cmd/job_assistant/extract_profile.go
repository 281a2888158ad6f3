package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractProfileCmd = &cobra.Command{
	Use:   "extract-profile",
	Short: "Extract a structured candidate profile from resume text",
	Long:  "Asks the model to pull work history, skills, education and additional info out of raw resume text, for use with the answer and rank workflows.",
	RunE:  runExtractProfile,
}

var (
	extractResumeFile string
	extractOutputFile string
)

func init() {
	extractProfileCmd.Flags().StringVarP(&extractResumeFile, "resume", "r", "", "Path to resume text file (required)")
	extractProfileCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := extractProfileCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(extractProfileCmd)
}

func runExtractProfile(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	resumeText, err := readTextFile(extractResumeFile)
	if err != nil {
		return err
	}

	svc, err := a.service(cmd.Context())
	if err != nil {
		return err
	}

	prof, err := svc.ExtractProfile(cmd.Context(), resumeText)
	if err != nil {
		return err
	}
	return writeJSON(extractOutputFile, prof)
}
