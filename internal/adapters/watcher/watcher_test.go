package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/watcher"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, roots ...string) (*watcher.Watcher, <-chan ports.WatchEvent) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	require.NoError(t, w.Start(ctx, roots...))

	ch := make(chan ports.WatchEvent, 64)
	go func() {
		defer close(ch)
		for ev := range w.Events() {
			ch <- ev
		}
	}()
	return w, ch
}

func waitFor(t *testing.T, ch <-chan ports.WatchEvent, path string) ports.WatchEvent {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			require.True(t, ok, "event stream ended before %s", path)
			if ev.Path == path {
				return ev
			}
		case <-deadline:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatcher_NestedDirectories(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "Button")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	_, events := startWatcher(t, root)

	file := filepath.Join(nested, "index.tsx")
	require.NoError(t, os.WriteFile(file, []byte("export {}"), domain.PrivateFilePerm))

	ev := waitFor(t, events, file)
	assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, ev.Operation)
}

func TestWatcher_NewDirectoryIsWatched(t *testing.T) {
	root := t.TempDir()
	_, events := startWatcher(t, root)

	dir := filepath.Join(root, "Card")
	require.NoError(t, os.Mkdir(dir, domain.DirPerm))
	waitFor(t, events, dir)

	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)
	file := filepath.Join(dir, "index.tsx")
	require.NoError(t, os.WriteFile(file, []byte("export {}"), domain.PrivateFilePerm))
	waitFor(t, events, file)
}

func TestWatcher_FileRoot(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, "utils.ts")
	require.NoError(t, os.WriteFile(shared, []byte("export const a = 1"), domain.PrivateFilePerm))

	_, events := startWatcher(t, shared, filepath.Join(dir, "missing"))

	require.NoError(t, os.WriteFile(shared, []byte("export const a = 22"), domain.PrivateFilePerm))
	ev := waitFor(t, events, shared)
	assert.Equal(t, ports.OpWrite, ev.Operation)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	w, events := startWatcher(t, t.TempDir())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("event stream did not end")
	}
}
