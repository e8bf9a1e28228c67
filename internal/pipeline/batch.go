package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult pairs one input file with its pipeline outcome. Err is set
// when that file failed; the rest of the batch is unaffected.
type BatchResult struct {
	Path   string
	Result *Result
	Err    error
}

// ProcessDirectory runs every .txt transcript in dir through the pipeline
// with bounded concurrency. Every input yields exactly one BatchResult, in
// stable (sorted path) order, regardless of individual failures.
func (s *Service) ProcessDirectory(ctx context.Context, dir string, concurrency int) ([]BatchResult, error) {
	paths, err := listTranscripts(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]BatchResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = s.processFile(ctx, path)
			// Failures are recorded per file, never propagated, so one
			// bad transcript cannot cancel the rest of the batch.
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info(ctx, "batch complete",
		zap.String("dir", dir),
		zap.Int("total", len(results)),
		zap.Int("failed", failed))

	return results, nil
}

// ProcessFile reads and processes a single transcript file.
func (s *Service) ProcessFile(ctx context.Context, path string) (*Result, error) {
	br := s.processFile(ctx, path)
	return br.Result, br.Err
}

func (s *Service) processFile(ctx context.Context, path string) BatchResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return BatchResult{Path: path, Err: fmt.Errorf("reading transcript: %w", err)}
	}

	result, err := s.Process(ctx, string(data), ClientNameFromPath(path))
	return BatchResult{Path: path, Result: result, Err: err}
}

func listTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ClientNameFromPath derives a client name from a transcript filename:
// "sarah_chen.txt" becomes "Sarah Chen".
func ClientNameFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
