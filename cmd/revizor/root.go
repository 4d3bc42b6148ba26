package main

import (
	"github.com/spf13/cobra"

	"revizor/version"
)

var (
	cfgFile  string
	homeDir  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "revizor",
	Short: "Review correction pipeline for Google Sheets",
	Long: `Revizor pulls customer reviews from Google Sheets, fixes grammar and
gender endings with an LLM, annotates remaining spelling errors, and writes
the results back with colored formatting.

The pipeline stages:
  - fetch: collect rows awaiting correction into a JSON snapshot
  - process: run the correction model over every review
  - mark: wrap spelling errors in [[..]] markers
  - update: write corrected text back with red/green highlighting`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.revizor/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "revizor home directory (default: ~/.revizor)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn, error (default: from config)",
	)

	rootCmd.AddCommand(
		configCmd,
		fetchCmd,
		processCmd,
		markCmd,
		updateCmd,
		runCmd,
		versionCmd,
	)
}
