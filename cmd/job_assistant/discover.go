package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assistant/internal/config"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover recent job listings across boards",
	Long:  "Queries every configured job board concurrently, deduplicates by URL and filters out stale listings.",
	RunE:  runDiscover,
}

var (
	discoverQuery      string
	discoverLocation   string
	discoverMax        int
	discoverOutputFile string
)

func init() {
	discoverCmd.Flags().StringVarP(&discoverQuery, "query", "q", "", "Search query (required)")
	discoverCmd.Flags().StringVarP(&discoverLocation, "location", "l", "", "Location filter")
	discoverCmd.Flags().IntVarP(&discoverMax, "max", "m", config.DefaultMaxCandidates, "Maximum number of listings")
	discoverCmd.Flags().StringVarP(&discoverOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := discoverCmd.MarkFlagRequired("query"); err != nil {
		panic(fmt.Sprintf("failed to mark query flag as required: %v", err))
	}

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	result := a.aggregator().Discover(cmd.Context(), discoverQuery, discoverLocation, discoverMax)
	return writeJSON(discoverOutputFile, result)
}
