package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/litmerge/internal/config"
	"github.com/matsen/litmerge/internal/logging"
	"github.com/matsen/litmerge/internal/pipeline"
	"github.com/matsen/litmerge/internal/record"
	"github.com/matsen/litmerge/internal/schema"
)

var (
	formatType   string
	formatInput  string
	formatOutput string
	formatJSONL  bool
	formatSQLite bool
	formatBibTeX bool
)

func init() {
	formatCmd.Flags().StringVarP(&formatType, "type", "t", "", "Export schema: "+schema.Help())
	formatCmd.Flags().StringVarP(&formatInput, "input", "i", "", "Input file exported from the database")
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "Output directory (default ./output_format)")
	formatCmd.Flags().BoolVar(&formatJSONL, "jsonl", false, "Also write a JSONL export")
	formatCmd.Flags().BoolVar(&formatSQLite, "sqlite", false, "Also write a SQLite export")
	formatCmd.Flags().BoolVar(&formatBibTeX, "bibtex", false, "Also write unique records as BibTeX")
	formatCmd.MarkFlagRequired("type")
	formatCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(formatCmd)
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Normalize and deduplicate one export file",
	Long: `Normalize and deduplicate one export file.

Writes input_<type>.xlsx with the sheets Detail (unique records),
Without DOI (tabular exports only) and Duplicates, and appends to the
day's run_litmerge_<YYYYMMDD>.log in the output directory.

Examples:
  litmerge format -t scopus -i scopus.csv
  litmerge format -t pmc -i pmc_result.txt -o results --jsonl
  litmerge format -t txt -i dois.txt --human`,
	Args: cobra.NoArgs,
	RunE: runFormat,
}

// FormatSummary is the result of a format run.
type FormatSummary struct {
	RunID                  string           `json:"run_id"`
	Schema                 string           `json:"schema"`
	Input                  string           `json:"input"`
	InputDigest            string           `json:"input_blake3"`
	Total                  int              `json:"total"`
	Unique                 int              `json:"unique"`
	MissingIdentifier      int              `json:"missing_identifier"`
	Duplicates             int              `json:"duplicates"`
	DuplicatesByIdentifier int              `json:"duplicates_by_identifier"`
	DuplicatesByTitle      int              `json:"duplicates_by_title"`
	Warnings               int              `json:"warnings"`
	Outputs                pipeline.Outputs `json:"outputs"`
	LogFile                string           `json:"log_file,omitempty"`
	Elapsed                string           `json:"elapsed"`
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	s, err := schema.Lookup(formatType)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	runCfg, err := resolveRunConfig(cmd, cfg, s)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	log, err := logging.New(logging.Options{Level: cfg.Level(), NoColor: cfg.NoColor, Dir: runCfg.OutputDir})
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	defer log.Close()
	runCfg.Logger = log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("################################")
	log.Info("###  litmerge " + Version)
	log.Info("################################")
	log.Infof("Reading %s export: %s", s.Tag, s.Description)
	log.Infof("Input:  %s", runCfg.InputPath)
	log.Infof("Output: %s", runCfg.OutputDir)

	start := time.Now()
	res, err := pipeline.Run(ctx, runCfg)
	if err != nil {
		log.Error(err)
		log.Infof("Elapsed time: %s", formatElapsed(time.Since(start)))
		log.Close()
		exitWithError(exitCodeFor(err), "%v", err)
	}

	summary := newFormatSummary(res, runCfg, log.FilePath)
	log.Infof("Records: %s unique, %s without DOI, %s duplicates",
		formatCount(summary.Unique), formatCount(summary.MissingIdentifier), formatCount(summary.Duplicates))
	log.Infof("Elapsed time: %s", summary.Elapsed)
	log.Info("Done!")

	if humanOutput {
		printFormatSummaryHuman(summary)
	} else {
		outputJSON(summary)
	}
	return nil
}

// resolveRunConfig merges flags over the loaded config and prepares the
// output directory. Flags win over config values.
func resolveRunConfig(cmd *cobra.Command, cfg *config.Config, s schema.Schema) (pipeline.RunConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return pipeline.RunConfig{}, fmt.Errorf("getting current directory: %w", err)
	}

	outDir := cfg.ResolveOutputDir(cwd)
	if cmd.Flags().Changed("output") {
		outDir = config.ExpandPath(formatOutput)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return pipeline.RunConfig{}, fmt.Errorf("creating output directory: %w", err)
	}

	return pipeline.RunConfig{
		Schema:      s,
		InputPath:   formatInput,
		OutputDir:   outDir,
		WriteJSONL:  cfg.JSONL || formatJSONL,
		WriteSQLite: cfg.SQLite || formatSQLite,
		WriteBibTeX: cfg.BibTeX || formatBibTeX,
	}, nil
}

func newFormatSummary(res *pipeline.Result, cfg pipeline.RunConfig, logFile string) FormatSummary {
	rs := res.Records
	summary := FormatSummary{
		RunID:             res.RunID,
		Schema:            cfg.Schema.Tag,
		Input:             cfg.InputPath,
		InputDigest:       res.InputDigest,
		Total:             rs.Total(),
		Unique:            len(rs.Unique),
		MissingIdentifier: len(rs.MissingIdentifier),
		Duplicates:        len(rs.Duplicates),
		Warnings:          len(rs.Warnings),
		Outputs:           res.Outputs,
		LogFile:           logFile,
		Elapsed:           formatElapsed(res.Elapsed),
	}
	for _, r := range rs.Duplicates {
		switch r.DuplicateReason {
		case record.ReasonByIdentifier:
			summary.DuplicatesByIdentifier++
		case record.ReasonByTitle:
			summary.DuplicatesByTitle++
		}
	}
	return summary
}

func printFormatSummaryHuman(s FormatSummary) {
	fmt.Printf("Formatted %s export %s\n\n", s.Schema, s.Input)
	fmt.Printf("  Records:      %s\n", formatCount(s.Total))
	fmt.Printf("  Unique:       %s\n", formatCount(s.Unique))
	if s.Schema != schema.TagText {
		fmt.Printf("  Without DOI:  %s\n", formatCount(s.MissingIdentifier))
	}
	fmt.Printf("  Duplicates:   %s (%s by DOI, %s by title)\n",
		formatCount(s.Duplicates), formatCount(s.DuplicatesByIdentifier), formatCount(s.DuplicatesByTitle))
	if s.Warnings > 0 {
		fmt.Printf("  Warnings:     %s (see log)\n", formatCount(s.Warnings))
	}

	fmt.Println()
	printOutput("Workbook", s.Outputs.Workbook)
	printOutput("JSONL", s.Outputs.JSONL)
	printOutput("SQLite", s.Outputs.SQLite)
	printOutput("BibTeX", s.Outputs.BibTeX)
	if s.LogFile != "" {
		fmt.Printf("  %-9s %s\n", "Log:", s.LogFile)
	}
	fmt.Printf("\nElapsed time: %s\n", s.Elapsed)
}

func printOutput(label, path string) {
	if path == "" {
		return
	}
	if size := fileSize(path); size != "" {
		fmt.Printf("  %-9s %s (%s)\n", label+":", path, size)
		return
	}
	fmt.Printf("  %-9s %s\n", label+":", path)
}
