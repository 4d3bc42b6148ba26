package main

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	runLoop     bool
	runInterval int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: fetch, process, mark, update",
	Long: `Run executes one full cycle against the configured spreadsheets. With
--loop it keeps running, sleeping between cycles; cycle errors are logged and
the loop continues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		p, err := a.newPipeline(ctx)
		if err != nil {
			return err
		}

		if !runLoop {
			return p.Run(ctx)
		}

		// The --interval flag pins the cadence; otherwise it follows the
		// config, which hot-reloads while the loop runs.
		a.watchConfig()
		interval := func() time.Duration {
			if runInterval > 0 {
				return time.Duration(runInterval) * time.Minute
			}
			return a.interval()
		}
		a.logger.Info("starting pipeline loop", "interval", interval())
		return p.Loop(ctx, interval)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runLoop, "loop", false, "keep running, sleeping between cycles")
	runCmd.Flags().IntVar(&runInterval, "interval", 0, "minutes between cycles (default: from config)")
}
