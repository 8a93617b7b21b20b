package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"labreport/internal/project"
)

const waitFor = 3 * time.Second

func newTestWatcher(t *testing.T, dir string, rebuild RebuildFunc) *Watcher {
	t.Helper()
	w, err := New(dir, project.DefaultExtensions, 50*time.Millisecond, rebuild)
	require.NoError(t, err)
	return w
}

func TestWatcher_RebuildsOnProgramFileChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var rebuilds atomic.Int32
	w := newTestWatcher(t, dir, func(context.Context) error {
		rebuilds.Add(1)
		return nil
	})
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.py"), []byte("def a():"), 0644))

	assert.Eventually(t, func() bool { return rebuilds.Load() >= 1 }, waitFor, 10*time.Millisecond)
	w.Stop()

	stats := w.GetStats()
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.GreaterOrEqual(t, stats.Rebuilds, 1)
	assert.Equal(t, filepath.Join(dir, "new.py"), stats.LastEventPath)
	assert.False(t, stats.LastRebuild.IsZero())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var rebuilds atomic.Int32
	w := newTestWatcher(t, dir, func(context.Context) error {
		rebuilds.Add(1)
		return nil
	})
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Final_Project_Report.docx"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0644))

	time.Sleep(300 * time.Millisecond)
	w.Stop()

	assert.Zero(t, rebuilds.Load())
	assert.Zero(t, w.GetStats().Events)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var rebuilds atomic.Int32
	w, err := New(dir, project.DefaultExtensions, 400*time.Millisecond, func(context.Context) error {
		rebuilds.Add(1)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	for _, name := range []string{"a.py", "b.r", "c.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	assert.Eventually(t, func() bool { return rebuilds.Load() >= 1 }, waitFor, 10*time.Millisecond)
	w.Stop()

	assert.Equal(t, int32(1), rebuilds.Load(), "a burst inside the debounce window rebuilds once")
	assert.GreaterOrEqual(t, w.GetStats().Events, 3)
}

func TestWatcher_CountsRebuildErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var calls atomic.Int32
	w := newTestWatcher(t, dir, func(context.Context) error {
		calls.Add(1)
		return errors.New("locked")
	})
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.r"), []byte("a <- 1"), 0644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, waitFor, 10*time.Millisecond)
	w.Stop()

	stats := w.GetStats()
	assert.GreaterOrEqual(t, stats.Errors, 1)
	assert.Zero(t, stats.Rebuilds)
}

func TestWatcher_ContextCancelStopsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	w := newTestWatcher(t, t.TempDir(), func(context.Context) error { return nil })
	require.NoError(t, w.Start(ctx))

	cancel()
	select {
	case <-w.doneCh:
	case <-time.After(waitFor):
		t.Fatal("loop did not exit after cancel")
	}
	w.Stop()
}

func TestWatcher_StartMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := newTestWatcher(t, filepath.Join(t.TempDir(), "missing"), func(context.Context) error { return nil })
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}
