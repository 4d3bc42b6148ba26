package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"revizor/internal/pipeline"
	"revizor/internal/review"
)

var markInput string

var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Annotate spelling errors in corrected reviews",
	Long: `Mark loads the processed snapshot and asks the model to wrap every
misspelled letter in [[..]] markers. The marked snapshot is what the update
command turns into red highlighting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		input := markInput
		if input == "" {
			input = a.home.ProcessedSnapshotPath()
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

		_, stats, err := p.Mark(ctx, col)
		if err != nil {
			return err
		}

		fmt.Printf("Marked %d reviews (%d failed) in %s\n", stats.Items, stats.Failed, stats.Duration.Round(10*time.Millisecond))
		fmt.Printf("Total cost: $%.6f, average: $%.6f\n", stats.TotalCost, stats.AvgCost)
		fmt.Printf("Snapshot: %s\n", a.home.MarkedSnapshotPath())
		return nil
	},
}

func init() {
	markCmd.Flags().StringVar(&markInput, "input", "", "input snapshot (default: processed snapshot)")
}
