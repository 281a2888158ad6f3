// Package main provides the job_assistant CLI: resume analysis, tailored
// answers, job discovery and profile-driven ranking.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_assistant",
	Short: "AI job assistant",
	Long:  "job_assistant scrapes job postings, scores resumes against them, generates tailored application answers and ranks discovered jobs against a candidate profile.",
}

var (
	configFile string
	jsonLog    bool
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to JSON config file (overrides environment)")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Emit JSON logs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
