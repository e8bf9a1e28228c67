package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/logging"
)

// ErrWatcherFailed indicates the inbox watcher could not be created.
var ErrWatcherFailed = errors.New("failed to create inbox watcher")

// settleDelay gives the writer time to finish before a dropped transcript
// is read. Transcripts land in the inbox as whole small files, so a short
// delay is enough.
const settleDelay = 500 * time.Millisecond

// Watcher processes transcripts as they land in an inbox directory.
type Watcher struct {
	service *Service
	dir     string
	watcher *fsnotify.Watcher
	logger  *logging.Logger

	// seen dedupes Create followed by Write for the same drop.
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewWatcher creates an inbox watcher. Existing files are not processed;
// run a batch pass first to drain a pre-populated inbox.
func NewWatcher(service *Service, dir string, logger *logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		service: service,
		dir:     dir,
		watcher: fsw,
		logger:  logger.Named("watch"),
		seen:    make(map[string]time.Time),
	}, nil
}

// Run blocks processing inbox events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	w.logger.Info(ctx, "watching inbox", zap.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".txt") {
				continue
			}
			if !w.markSeen(event.Name) {
				continue
			}
			go w.handleDrop(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error(ctx, "inbox watcher error", zap.Error(err))
		}
	}
}

// markSeen reports whether this path should be processed, suppressing
// duplicate events within the settle window.
func (w *Watcher) markSeen(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if last, ok := w.seen[path]; ok && now.Sub(last) < 2*settleDelay {
		return false
	}
	w.seen[path] = now
	return true
}

func (w *Watcher) handleDrop(ctx context.Context, path string) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(settleDelay):
	}

	result, err := w.service.ProcessFile(ctx, path)
	if err != nil {
		w.logger.Error(ctx, "failed to process dropped transcript",
			zap.String("path", path), zap.Error(err))
		return
	}
	w.logger.Info(ctx, "processed dropped transcript",
		zap.String("path", path),
		zap.Int("score", result.Report.OverallScore),
		zap.String("recommendation", string(result.Report.Recommendation)))
}
