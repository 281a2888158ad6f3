package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/assistant"
	"github.com/jonathan/job-assistant/internal/profile"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Generate a tailored answer to an application question",
	Long:  "Builds a personalized answer from the candidate profile and the job description. The profile comes from a JSON file or, with --user-id, from the database.",
	RunE:  runAnswer,
}

var (
	answerQuestion    string
	answerProfileFile string
	answerUserID      string
	answerJobURL      string
	answerJDFile      string
	answerOutputFile  string
)

func init() {
	answerCmd.Flags().StringVarP(&answerQuestion, "question", "q", "", "Application question (required)")
	answerCmd.Flags().StringVarP(&answerProfileFile, "profile", "p", "", "Path to candidate profile JSON file")
	answerCmd.Flags().StringVar(&answerUserID, "user-id", "", "Load the profile from the database for this user ID")
	answerCmd.Flags().StringVarP(&answerJobURL, "url", "u", "", "Job posting URL")
	answerCmd.Flags().StringVarP(&answerJDFile, "description", "d", "", "Path to a pasted job description file (skips scraping when long enough)")
	answerCmd.Flags().StringVarP(&answerOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := answerCmd.MarkFlagRequired("question"); err != nil {
		panic(fmt.Sprintf("failed to mark question flag as required: %v", err))
	}

	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	svc, err := a.service(cmd.Context())
	if err != nil {
		return err
	}

	var prof profile.CandidateProfile
	switch {
	case answerUserID != "":
		if a.cfg.DatabaseURL == "" {
			return fmt.Errorf("--user-id requires DATABASE_URL")
		}
		store, err := profile.Connect(cmd.Context(), a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		if prof, err = store.Get(cmd.Context(), answerUserID); err != nil {
			return err
		}
	case answerProfileFile != "":
		data, err := os.ReadFile(answerProfileFile)
		if err != nil {
			return fmt.Errorf("failed to read profile file: %w", err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse profile JSON: %w", err)
		}
		prof = profile.FromMap(raw)
	default:
		return fmt.Errorf("provide --profile or --user-id")
	}

	jobDescription := ""
	if answerJDFile != "" {
		if jobDescription, err = readTextFile(answerJDFile); err != nil {
			return err
		}
	}

	result := svc.GenerateAnswer(cmd.Context(), assistant.AnswerRequest{
		Question:       answerQuestion,
		Profile:        prof,
		JobURL:         answerJobURL,
		JobDescription: jobDescription,
	})
	return writeJSON(answerOutputFile, result)
}
