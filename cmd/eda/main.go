package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"goeda/internal"
	"goeda/internal/config"
	"goeda/internal/history"
	"goeda/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	log := internal.NewDefaultLogger()

	rootCmd := newRunCmd(log)
	rootCmd.AddCommand(newHistoryCmd(log))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd(log *internal.Logger) *cobra.Command {
	var (
		input          string
		all            bool
		skipProfile    bool
		skipComparison bool
		skipSample     bool
		seed           int64
	)

	cmd := &cobra.Command{
		Use:   "eda",
		Short: "Generate exploratory-data-analysis reports for CSV datasets",
		Long: `Load a delimited dataset, infer column types, audit missing values, and
write a bundle of HTML reports (profiling, comparison, correlation heatmap,
categorical bar charts) plus a sampled CSV into a timestamped directory.

Example: eda --input data/raw/orders.csv --skip-comparison`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && input == "" {
				return fmt.Errorf("please provide either --input or --all")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var ledger *history.Ledger
			if cfg.History.Enabled {
				if err := os.MkdirAll(cfg.Paths.ReportsDir, 0o755); err == nil {
					ledger, err = history.Open(cfg.History.Path)
					if err != nil {
						log.Warn("[CLI] Run history disabled: %v", err)
						ledger = nil
					}
				}
			}
			if ledger != nil {
				defer ledger.Close()
			}

			orchestrator, err := report.NewOrchestrator(log, cfg, ledger)
			if err != nil {
				return err
			}

			opts := report.Options{
				SkipProfile:    skipProfile,
				SkipComparison: skipComparison,
				SkipSample:     skipSample,
				Seed:           seed,
			}
			if all {
				return orchestrator.RunAll(cmd.Context(), opts)
			}
			_, err = orchestrator.Run(cmd.Context(), input, opts)
			return err
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to a single CSV (or xlsx) file")
	cmd.Flags().BoolVar(&all, "all", false, "Process every CSV in the raw-data directory")
	cmd.Flags().BoolVar(&skipProfile, "skip-profile", false, "Skip the profiling report")
	cmd.Flags().BoolVar(&skipComparison, "skip-comparison", false, "Skip the comparison report")
	cmd.Flags().BoolVar(&skipSample, "skip-sample", false, "Skip the sample CSV export")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for sampling (0 = time-based)")

	return cmd
}

func newHistoryCmd(log *internal.Logger) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent report runs from the history ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("run history is disabled (HISTORY_DB=off)")
			}

			ledger, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer ledger.Close()

			entries, err := ledger.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				log.Info("[CLI] No recorded runs yet")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tDATASET\tSTATUS\tOUTPUT")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					entry.StartedAt.Format("2006-01-02 15:04:05"), entry.Dataset, entry.Status, entry.OutputDir)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
