//go:build e2e && unix

package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStepAndPlay(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	path, err := tf.WriteTrace("bfs_events.jsonl", bfsTrace)
	require.NoError(t, err, "Failed to write trace")

	err = tf.StartApp("--events", path, "--speed", "10")
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("2/8"), "Prelude should be applied on load")

	tf.Step()
	require.True(t, tf.SeePlain("3/8"), "Step should apply one event")
	require.True(t, tf.SeePlain("op=frontier_add"), "Should show the last op")

	tf.TogglePlay()
	require.True(t, tf.OutputContainsPlain("found", 5*time.Second), "Playback should reach the goal")
	require.True(t, tf.SeePlain("best 4"), "Should report the best path length")
}

func TestDirectoryDiscovery(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	_, err = tf.WriteTrace("bfs_events.jsonl", bfsTrace)
	require.NoError(t, err)
	_, err = tf.WriteTrace("astar_events.jsonl", bfsTrace)
	require.NoError(t, err)

	err = tf.StartApp("-d", workspace)
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("ASTAR"), "Should show the A* pane")
	require.True(t, tf.SeePlain("BFS"), "Should show the BFS pane")
	require.True(t, tf.SeePlain("Added 2 panes"), "Should report discovery")
}

func TestWatchReloadsTrace(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	path, err := tf.WriteTrace("bfs_events.jsonl", bfsTrace)
	require.NoError(t, err, "Failed to write trace")

	err = tf.StartApp("--events", path, "--watch")
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("2/8"), "Should load the trace")

	// Give the watcher a moment to register before rewriting
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"op":"meta","n":4,"m":4}`+"\n"+`{"op":"done"}`+"\n"), 0644))

	require.True(t, tf.OutputContainsPlain("Reloaded", 5*time.Second), "Should reload the rewritten trace")
	require.True(t, tf.SeePlain("1/2"), "Should rewind past the new prelude")
}
