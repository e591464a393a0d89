package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"mazereplay/internal/domain"
)

var bfsTrace = strings.Join([]string{
	`{"op":"meta","n":3,"m":3,"sx":0,"sy":0,"ex":2,"ey":2}`,
	`{"op":"wall","x":1,"y":0}`,
	`{"op":"frontier_add","t":1,"x":0,"y":1,"px":0,"py":0}`,
	`{"op":"set_current","t":2,"x":0,"y":1}`,
	`{"op":"frontier_add","t":3,"x":1,"y":1,"px":0,"py":1}`,
	`{"op":"set_current","t":4,"x":1,"y":1}`,
	`{"op":"frontier_add","t":5,"x":2,"y":2,"px":1,"py":1}`,
	`{"op":"found","t":6,"x":2,"y":2}`,
}, "\n") + "\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command with a throwaway config and log file
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MAZEREPLAY_LOG_FILE", filepath.Join(dir, "test.log"))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.toml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParsePane(t *testing.T) {
	spec, err := parsePane("BFS:out/bfs_events.jsonl")
	require.NoError(t, err)
	require.Equal(t, domain.PaneSpec{Label: "BFS", TracePath: "out/bfs_events.jsonl"}, spec)

	for _, bad := range []string{"BFS", ":path", "BFS:", ""} {
		_, err := parsePane(bad)
		require.Error(t, err, bad)
	}
}

func TestPaneSpecs(t *testing.T) {
	specs, err := paneSpecs(&options{
		events: "out/dfs_events.jsonl",
		panes:  []string{"BFS:out/bfs_events.jsonl"},
	})
	require.NoError(t, err)
	require.Equal(t, []domain.PaneSpec{
		{Label: "DFS", TracePath: "out/dfs_events.jsonl"},
		{Label: "BFS", TracePath: "out/bfs_events.jsonl"},
	}, specs)

	_, err = paneSpecs(&options{panes: []string{"A:a.jsonl", "A:b.jsonl"}})
	require.Error(t, err)
}

func TestLoadPanesPlaceholder(t *testing.T) {
	store, err := loadPanes(nil, "", true)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	pane := store.GetAllPanes()[0]
	require.Equal(t, "MAZE", pane.Label)
	require.Equal(t, 10, pane.Player.State().Rows())

	store, err = loadPanes(nil, "", false)
	require.NoError(t, err)
	require.Equal(t, 0, store.Len())
}

func TestJSONMode(t *testing.T) {
	dir := t.TempDir()
	bfs := writeFile(t, dir, "bfs_events.jsonl", bfsTrace)
	dfs := writeFile(t, dir, "dfs_events.jsonl", `{"op":"meta","n":3,"m":3}`+"\n"+`{"op":"done"}`+"\n")

	out, err := execute(t, "--json", "--events", bfs, "--pane", "DEPTH:"+dfs)
	require.NoError(t, err)
	require.True(t, gjson.Valid(out), out)

	result := gjson.Parse(out)
	require.Equal(t, int64(2), result.Get("#").Int())

	require.Equal(t, "BFS", result.Get("0.label").String())
	require.True(t, result.Get("0.found").Bool())
	require.Equal(t, int64(8), result.Get("0.events").Int())
	require.Equal(t, "EOF", result.Get("0.snapshot.last_op").String())
	require.Equal(t, `[[0,0],[0,1],[1,1],[2,2]]`, result.Get("0.snapshot.best_path").Raw)
	require.Equal(t, `[[1,0]]`, result.Get("0.snapshot.walls").Raw)

	require.Equal(t, "DEPTH", result.Get("1.label").String())
	require.False(t, result.Get("1.found").Bool())
	require.Equal(t, "Done", result.Get("1.snapshot.message").String())
}

func TestJSONModeDiscoversDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bfs_events.jsonl", bfsTrace)
	writeFile(t, dir, "astar_events.jsonl", bfsTrace)

	out, err := execute(t, "--json", "--dir", dir)
	require.NoError(t, err)
	labels := gjson.Get(out, "#.label").Array()
	require.Len(t, labels, 2)
	require.Equal(t, "ASTAR", labels[0].String())
	require.Equal(t, "BFS", labels[1].String())
}

func TestJSONModeWithMaze(t *testing.T) {
	dir := t.TempDir()
	maze := writeFile(t, dir, "maze.txt", "2 3\n4 1 0\n0 0 3\n")

	out, err := execute(t, "--json", "--maze", maze)
	require.NoError(t, err)
	require.Equal(t, "MAZE", gjson.Get(out, "0.label").String())
	require.Equal(t, int64(2), gjson.Get(out, "0.snapshot.n").Int())
	require.Equal(t, int64(3), gjson.Get(out, "0.snapshot.m").Int())
	require.Equal(t, `[[0,1]]`, gjson.Get(out, "0.snapshot.walls").Raw)
	require.Equal(t, "No events loaded yet", gjson.Get(out, "0.snapshot.message").String())
}

func TestBadTraceFails(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad_events.jsonl", `{"op":"meta","n":3,"m":3}`+"\n"+"{not json\n")

	_, err := execute(t, "--json", "--events", bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MAZEREPLAY_LOG_FILE", filepath.Join(dir, "test.log"))
	path := filepath.Join(dir, "nested", "config.toml")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "--speed", "120", "--batch", "5", "--write-config"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "speed_ms = 120")
	require.Contains(t, string(data), "batch = 5")
}
