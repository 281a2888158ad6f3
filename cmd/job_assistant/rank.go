package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/config"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank discovered jobs against a stored candidate profile",
	Long:  "Loads the candidate profile from the database, discovers matching jobs and asks the model to rank them with per-job explanations.",
	RunE:  runRank,
}

var (
	rankUserID     string
	rankMaxJobs    int
	rankMaxRanked  int
	rankOutputFile string
)

func init() {
	rankCmd.Flags().StringVar(&rankUserID, "user-id", "", "User ID for profile lookup (required)")
	rankCmd.Flags().IntVar(&rankMaxJobs, "max-jobs", config.DefaultMaxCandidates, "Maximum candidate jobs to discover")
	rankCmd.Flags().IntVar(&rankMaxRanked, "max-ranked", config.DefaultMaxRanked, "Maximum ranked jobs to return")
	rankCmd.Flags().StringVarP(&rankOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := rankCmd.MarkFlagRequired("user-id"); err != nil {
		panic(fmt.Sprintf("failed to mark user-id flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	svc, err := a.service(cmd.Context())
	if err != nil {
		return err
	}

	result := svc.RankForUser(cmd.Context(), rankUserID, rankMaxJobs, rankMaxRanked)
	return writeJSON(rankOutputFile, result)
}
