package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/willowgate/transcriptd/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process <transcript.txt>",
	Short: "Process a single transcript file",
	Long: `Run one transcript through the full pipeline and print the result as JSON.

The client name is derived from the filename: sarah_chen.txt becomes
"Sarah Chen". Override it with --client.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

var processClientName string

func init() {
	processCmd.Flags().StringVar(&processClientName, "client", "", "client name override")
}

func runProcess(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	path := args[0]
	var result *pipeline.Result
	if processClientName != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading transcript: %w", err)
		}
		result, err = a.service.Process(cmd.Context(), string(data), processClientName)
		if err != nil {
			return err
		}
	} else {
		result, err = a.service.ProcessFile(cmd.Context(), path)
		if err != nil {
			return err
		}
	}

	return printJSON(result)
}

var (
	batchWatch       bool
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Process every transcript in a directory",
	Long: `Process all .txt transcripts in a directory with bounded concurrency.
Without an argument the configured pipeline.watch_dir is used.

With --watch the directory is drained first and then watched; transcripts
dropped into it afterwards are processed as they arrive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchWatch, "watch", false, "keep watching the directory after the initial pass")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "parallel workers (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = a.cfg.Pipeline.Concurrency
	}

	dir := a.cfg.Pipeline.WatchDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no directory given and pipeline.watch_dir is not configured")
	}

	results, err := a.service.ProcessDirectory(ctx, dir, concurrency)
	if err != nil {
		return err
	}

	summary := struct {
		Total   int      `json:"total"`
		Failed  int      `json:"failed"`
		Results []string `json:"results"`
	}{Total: len(results)}
	for _, r := range results {
		line := r.Path
		if r.Err != nil {
			summary.Failed++
			line += ": error: " + r.Err.Error()
		} else {
			line += fmt.Sprintf(": %s (score %d)", r.Result.Report.Recommendation, r.Result.Report.OverallScore)
		}
		summary.Results = append(summary.Results, line)
	}
	if err := printJSON(summary); err != nil {
		return err
	}

	if !batchWatch {
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d transcripts failed", summary.Failed, summary.Total)
		}
		return nil
	}

	watcher, err := pipeline.NewWatcher(a.service, dir, a.logger)
	if err != nil {
		return err
	}
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
