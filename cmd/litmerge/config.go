package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/litmerge/internal/config"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEnvCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect configuration.

Configuration is read from ~/.config/litmerge/config.yml (or the file named
by LITMERGE_CONFIG). LITMERGE_* environment variables, including those in a
.env file in the working directory, override file values; command flags
override both.

Keys:
  output_dir  Directory for output files (default ./output_format)
  jsonl       Also write a JSONL export
  sqlite      Also write a SQLite export
  bibtex      Also write unique records as BibTeX
  log_level   Console log level (debug, info, warn, error)
  no_color    Disable colored console output`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "Describe the supported environment variables",
	Args:  cobra.NoArgs,
	RunE:  runConfigEnv,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if humanOutput {
		data, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("rendering config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}
	return outputJSON(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := config.Path()
	if humanOutput {
		fmt.Println(path)
		return nil
	}
	return outputJSON(StatusResponse{Status: "ok", Path: path})
}

func runConfigEnv(cmd *cobra.Command, args []string) error {
	usage, err := config.Usage()
	if err != nil {
		return fmt.Errorf("describing environment: %w", err)
	}
	fmt.Println(usage)
	return nil
}
