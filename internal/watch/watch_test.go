package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mazereplay/internal/eventbus"
)

func TestWatcherReportsRewrittenTrace(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "bfs_events.jsonl")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(trace, []byte(`{"op":"done"}`+"\n"), 0644))

	bus := eventbus.New()
	defer bus.Close()

	var count atomic.Int32
	got := make(chan string, 4)
	bus.Subscribe(eventbus.EventTraceChanged, func(e eventbus.DomainEvent) {
		count.Add(1)
		got <- e.(eventbus.TraceChangedEvent).Path
	})

	w, err := New(bus, []string{trace}, 50*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	// a burst of writes is reported once
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(trace, []byte(`{"op":"meta","n":2,"m":2}`+"\n"), 0644))
	}

	select {
	case p := <-got:
		require.Equal(t, trace, p)
	case <-time.After(3 * time.Second):
		t.Fatal("TraceChanged was not published")
	}

	time.Sleep(300 * time.Millisecond)
	require.Equal(t, int32(1), count.Load())
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(nil, []string{filepath.Join(t.TempDir(), "missing", "bfs_events.jsonl")}, 0)
	require.Error(t, err)
}

func TestWatcherStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	w, err := New(eventbus.New(), []string{filepath.Join(dir, "dfs_events.jsonl")}, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	w.Stop()
}

func TestWatcherAddLater(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "astar_events.jsonl")

	bus := eventbus.New()
	defer bus.Close()
	got := make(chan string, 4)
	bus.Subscribe(eventbus.EventTraceChanged, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.TraceChangedEvent).Path
	})

	w, err := New(bus, nil, 20*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	require.NoError(t, w.Add(trace))
	require.NoError(t, w.Add(trace), "adding twice is harmless")
	require.NoError(t, os.WriteFile(trace, []byte(`{"op":"done"}`+"\n"), 0644))

	select {
	case p := <-got:
		require.Equal(t, trace, p)
	case <-time.After(3 * time.Second):
		t.Fatal("TraceChanged was not published")
	}
}
