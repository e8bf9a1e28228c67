package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "sarah_chen.txt", closedWonTranscript)
	writeTranscript(t, dir, "dana_fox.txt", "Nothing useful was said.")
	writeTranscript(t, dir, "notes.md", "not a transcript")

	rows := &stubRows{}
	svc := newTestService(t, rows, nil)

	results, err := svc.ProcessDirectory(context.Background(), dir, 2)
	require.NoError(t, err)
	require.Len(t, results, 2, "non-txt files are skipped")

	// Results come back in sorted path order.
	assert.Equal(t, filepath.Join(dir, "dana_fox.txt"), results[0].Path)
	assert.Equal(t, filepath.Join(dir, "sarah_chen.txt"), results[1].Path)

	for _, r := range results {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Result)
	}
	assert.Equal(t, "Dana Fox", results[0].Result.ClientName)
	assert.Equal(t, "Sarah Chen", results[1].Result.ClientName)
	assert.Len(t, rows.saved(), 2)
}

func TestProcessDirectory_OneFailureDoesNotBlockOthers(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a_client.txt", closedWonTranscript)
	writeTranscript(t, dir, "b_client.txt", closedWonTranscript)

	// Every save fails, so every file reports its own error and the batch
	// still yields one result per input.
	rows := &stubRows{err: os.ErrDeadlineExceeded}
	svc := newTestService(t, rows, nil)

	results, err := svc.ProcessDirectory(context.Background(), dir, 4)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
}

func TestProcessDirectory_EmptyAndMissing(t *testing.T) {
	svc := newTestService(t, &stubRows{}, nil)

	results, err := svc.ProcessDirectory(context.Background(), t.TempDir(), 2)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = svc.ProcessDirectory(context.Background(), "/nonexistent/path", 2)
	assert.Error(t, err)
}

func TestClientNameFromPath(t *testing.T) {
	cases := map[string]string{
		"/inbox/sarah_chen.txt":    "Sarah Chen",
		"robert-miller.txt":        "Robert Miller",
		"/inbox/angela_curtis.TXT": "Angela Curtis",
		"single.txt":               "Single",
	}
	for path, want := range cases {
		assert.Equal(t, want, ClientNameFromPath(path), path)
	}
}

func TestWatcher_ProcessesDroppedTranscript(t *testing.T) {
	dir := t.TempDir()
	rows := &stubRows{}
	svc := newTestService(t, rows, nil)

	w, err := NewWatcher(svc, dir, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	writeTranscript(t, dir, "sarah_chen.txt", closedWonTranscript)

	require.Eventually(t, func() bool {
		return len(rows.saved()) == 1
	}, 5*time.Second, 50*time.Millisecond, "dropped transcript should be processed")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancel")
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	svc := newTestService(t, &stubRows{}, nil)
	_, err := NewWatcher(svc, "/nonexistent/inbox", nil)
	assert.Error(t, err)
}
