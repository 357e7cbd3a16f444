package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"retain/internal/config"
	"retain/internal/export"
	"retain/internal/history"
	"retain/internal/pipeline"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		modeFlag       string
		csvPath        string
		chunkSize      int
		concurrency    int
		retentionYears int
		offline        bool
		noHistory      bool
		showAll        bool
	)

	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "Classify every file under a folder",
		Long: `Scan walks the folder recursively, applies the retention bypass rule,
extracts text from supported files, and asks the configured classifier for a
retention determination. Results stream in completion order; Ctrl-C stops the
scan after the in-flight chunk drains.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.buildLogger()
			if err != nil {
				return err
			}

			mode := pipeline.Mode(modeFlag)
			runCfg := pipeline.Config{
				ChunkSize:       cfg.Scan.ChunkSize,
				MaxConcurrency:  cfg.Scan.MaxConcurrency,
				RetentionYears:  cfg.Scan.RetentionYears,
				MaxContextLines: cfg.Scan.MaxContextLines,
				MaxContextChars: cfg.Scan.MaxContextChars,
				Mode:            mode,
			}
			if chunkSize > 0 {
				runCfg.ChunkSize = chunkSize
			}
			if concurrency > 0 {
				runCfg.MaxConcurrency = concurrency
			}
			if retentionYears > 0 {
				runCfg.RetentionYears = retentionYears
			}

			var classifier pipeline.Classifier
			backendName := "none"
			if mode != pipeline.ModeAgeOnly {
				selected, name, err := newBackend(cfg, offline)
				if err != nil {
					return err
				}
				if err := selected.HealthCheck(cmd.Context()); err != nil {
					return fmt.Errorf("classifier backend %s unavailable: %w (use --offline for the keyword heuristic)", name, err)
				}
				classifier = selected
				backendName = name
			}

			out := cmd.OutOrStdout()
			interactive := isatty.IsTerminal(os.Stderr.Fd())
			var bar *progressbar.ProgressBar
			if interactive {
				bar = progressbar.NewOptions64(-1,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("classifying"),
					progressbar.OptionShowCount(),
					progressbar.OptionThrottle(100*time.Millisecond),
					progressbar.OptionClearOnFinish(),
				)
			}
			progress := func(snapshot pipeline.Snapshot) {
				if bar == nil {
					return
				}
				bar.ChangeMax(snapshot.Total)
				_ = bar.Set(snapshot.Processed)
			}

			p := pipeline.New(runCfg, newRegistry(cfg), classifier, logger)
			started := time.Now()
			run, err := p.Start(cmd.Context(), args[0], progress)
			if err != nil {
				return err
			}

			// First Ctrl-C requests cooperative cancellation; the in-flight
			// chunk still drains before the run stops.
			signals := make(chan os.Signal, 1)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(signals)
			go func() {
				if _, ok := <-signals; ok {
					fmt.Fprintln(os.Stderr, "\nstopping after the current chunk...")
					run.Cancel()
				}
			}()

			results, state := run.Wait()
			if bar != nil {
				_ = bar.Finish()
			}

			if !showAll && len(results) > maxTableRows {
				fmt.Fprintf(out, "%s\n", renderResultsTable(topResults(results, maxTableRows)))
				fmt.Fprintf(out, "(showing first %d of %d results; use --all or --csv for the full set)\n",
					maxTableRows, len(results))
			} else {
				fmt.Fprintf(out, "%s\n", renderResultsTable(results))
			}
			printSummary(out, run, results, state, backendName, time.Since(started))

			if csvPath != "" {
				if err := export.WriteCSVFile(csvPath, results); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", csvPath)
			}

			if cfg.History.Enabled && !noHistory {
				if err := saveHistory(cmd, cfg, run, results, args[0], runCfg, state, started); err != nil {
					// History is advisory; a locked database must not turn a
					// finished scan into a failure.
					fmt.Fprintf(os.Stderr, "warning: history not saved: %v\n", err)
				}
			}

			if state == pipeline.StateCancelled {
				fmt.Fprintln(out, "Scan cancelled; results above are partial.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", string(pipeline.ModeClassify), "Run mode: classify or age-only")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write results to a CSV file")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Override the configured chunk size")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Override the configured max concurrency")
	cmd.Flags().IntVar(&retentionYears, "retention-years", 0, "Override the configured retention threshold")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the keyword heuristic instead of the model server")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip saving this run to history")
	cmd.Flags().BoolVar(&showAll, "all", false, "Show every result row instead of the first page")

	return cmd
}

const maxTableRows = 50

func topResults(results []pipeline.Result, n int) []pipeline.Result {
	if len(results) <= n {
		return results
	}
	return results[:n]
}

func printSummary(out io.Writer, run *pipeline.Run, results []pipeline.Result, state pipeline.State, backendName string, elapsed time.Duration) {
	snapshot := run.Snapshot()
	labels := map[pipeline.Label]int{}
	for _, result := range results {
		labels[result.Label]++
	}
	ordered := make([]string, 0, len(labels))
	for label := range labels {
		ordered = append(ordered, string(label))
	}
	sort.Strings(ordered)

	fmt.Fprintf(out, "Run %s finished: %s (backend %s, %s)\n",
		run.ID(), state, backendName, elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "Processed %d of %d: %d classified, %d skipped, %d errors\n",
		snapshot.Processed, snapshot.Total, snapshot.Success, snapshot.Skipped, snapshot.Errors)
	for _, label := range ordered {
		fmt.Fprintf(out, "  %-10s %d\n", label, labels[pipeline.Label(label)])
	}
}

func saveHistory(cmd *cobra.Command, cfg *config.Config, run *pipeline.Run, results []pipeline.Result, folder string, runCfg pipeline.Config, state pipeline.State, started time.Time) error {
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	snapshot := run.Snapshot()
	mode := runCfg.Mode
	if mode == "" {
		mode = pipeline.ModeClassify
	}
	record := history.RunRecord{
		ID:         run.ID(),
		Folder:     folder,
		Mode:       string(mode),
		State:      string(state),
		StartedAt:  started,
		FinishedAt: time.Now(),
		Processed:  snapshot.Processed,
		Total:      snapshot.Total,
		Success:    snapshot.Success,
		Skipped:    snapshot.Skipped,
		Errors:     snapshot.Errors,
	}
	rows := make([]history.ResultRecord, 0, len(results))
	for _, result := range results {
		rows = append(rows, history.ResultRecord{
			Path:        result.Path,
			Label:       string(result.Label),
			Confidence:  result.Confidence,
			Insight:     result.Insight,
			Status:      string(result.Status),
			ErrorDetail: result.ErrorDetail,
			ModifiedAt:  result.ModifiedAt,
			SizeBytes:   result.SizeBytes,
			Duration:    result.Duration,
		})
	}
	return store.SaveRun(cmd.Context(), record, rows)
}
