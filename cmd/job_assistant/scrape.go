package main

import (
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape a job description from a posting URL",
	Long:  "Fetches the posting with the configured strategy chain, extracts the description text and reports which method succeeded.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScrape,
}

var scrapeOutputFile string

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	result := a.scraper().Scrape(cmd.Context(), args[0])
	return writeJSON(scrapeOutputFile, result)
}
