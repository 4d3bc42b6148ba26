package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"revizor/internal/review"
	"revizor/internal/sheets"
)

var updateInput string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Write a processed snapshot back to Google Sheets",
	Long: `Update matches snapshot reviews to spreadsheet rows by their source text
and fills the gender and corrected-text columns. Spelling markers become red
runs, corrected words green runs. Rows whose corrected column was filled in
the meantime are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if len(a.cfg.Sheets) == 0 {
			return fmt.Errorf("no spreadsheets configured; add them under \"sheets\" in %s", a.home.ConfigPath())
		}

		input := updateInput
		if input == "" {
			input = a.home.MarkedSnapshotPath()
		}
		col, err := review.Load(input)
		if err != nil {
			return err
		}

		client, err := a.sheetsClient(ctx)
		if err != nil {
			return err
		}
		if err := sheets.NewUpdater(client, a.logger).Update(ctx, a.cfg.Sheets, col); err != nil {
			return err
		}

		fmt.Printf("Wrote back %d reviews from %s\n", col.Total(), input)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateInput, "input", "", "input snapshot (default: marked snapshot)")
}
