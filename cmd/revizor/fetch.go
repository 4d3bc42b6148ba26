package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"revizor/internal/review"
	"revizor/internal/sheets"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Collect reviews awaiting correction into a snapshot",
	Long: `Fetch reads every worksheet of the configured spreadsheets and collects
rows whose source text is filled but whose corrected column is still empty.
The result is written to the reviews snapshot in the home directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if len(a.cfg.Sheets) == 0 {
			return fmt.Errorf("no spreadsheets configured; add them under \"sheets\" in %s", a.home.ConfigPath())
		}
		client, err := a.sheetsClient(ctx)
		if err != nil {
			return err
		}

		col, err := sheets.NewFetcher(client, a.logger).Fetch(ctx, a.cfg.Sheets)
		if err != nil {
			return err
		}
		if err := review.Save(a.home.ReviewsSnapshotPath(), col); err != nil {
			return err
		}

		fmt.Printf("Fetched %d pending reviews into %s\n", col.Total(), a.home.ReviewsSnapshotPath())
		return nil
	},
}
