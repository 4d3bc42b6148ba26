package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"revizor/internal/pipeline"
	"revizor/internal/review"
)

var processInput string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the correction model over a fetched snapshot",
	Long: `Process loads the reviews snapshot, sends each review through the
correction model (grammar, gender endings, seasonal references) with bounded
concurrency, and writes the processed snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		input := processInput
		if input == "" {
			input = a.home.ReviewsSnapshotPath()
		}
		col, err := review.Load(input)
		if err != nil {
			return err
		}

		stages, err := a.checkerStages()
		if err != nil {
			return err
		}
		p := pipeline.New(pipeline.Config{
			Stages:        stages,
			Home:          a.home,
			MaxConcurrent: a.cfg.Pipeline.MaxConcurrent,
			Retryer:       a.retryer(),
			Logger:        a.logger,
		})

		_, stats, err := p.Process(ctx, col)
		if err != nil {
			return err
		}

		fmt.Printf("Processed %d reviews (%d failed) in %s\n", stats.Items, stats.Failed, stats.Duration.Round(10*time.Millisecond))
		fmt.Printf("Total cost: $%.6f, average: $%.6f\n", stats.TotalCost, stats.AvgCost)
		fmt.Printf("Snapshot: %s\n", a.home.ProcessedSnapshotPath())
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processInput, "input", "", "input snapshot (default: reviews snapshot)")
}
