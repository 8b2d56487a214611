// Package main provides the litmerge CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Optional .env in the working directory supplies LITMERGE_* settings.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "litmerge",
	Short: "Normalize and deduplicate bibliographic database exports",
	Long: `litmerge reads one export from a citation database (Scopus, Web of
Science, PubMed, PubMed Central, Dimensions) or a plain list of DOIs,
normalizes every entry and splits the entries into unique records, records
without a DOI and duplicates (by DOI, then by title).

Results are written to an .xlsx workbook, optionally with JSONL, SQLite and
BibTeX exports. Command summaries are JSON by default; use --human for text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
