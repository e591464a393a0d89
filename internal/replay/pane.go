package replay

import (
	"fmt"
	"path/filepath"
	"strings"

	"mazereplay/internal/maze"
	"mazereplay/internal/trace"
)

// Pane is one side-by-side replay: a label, where its inputs live and the
// player holding its state. Panes never share state.
type Pane struct {
	Label     string
	TracePath string
	MazePath  string
	Player    *Player
}

// NewPane creates an empty pane
func NewPane(label, tracePath, mazePath string) *Pane {
	if label == "" {
		label = LabelFor(tracePath)
	}
	return &Pane{
		Label:     label,
		TracePath: tracePath,
		MazePath:  mazePath,
		Player:    NewPlayer(),
	}
}

// LabelFor derives a pane label from a trace path: `out/bfs_events.jsonl` is BFS
func LabelFor(tracePath string) string {
	if tracePath == "" {
		return "MAZE"
	}
	base := filepath.Base(tracePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, "_events")
	if base == "" {
		return "TRACE"
	}
	return strings.ToUpper(base)
}

// Load reads the pane's maze and trace files and applies them, maze first.
// Both files are parsed before anything is applied, so a failure leaves the
// player as it was.
func (p *Pane) Load() error {
	var layout *maze.Layout
	if p.MazePath != "" {
		l, err := maze.LoadFile(p.MazePath)
		if err != nil {
			return fmt.Errorf("failed to load maze for %s: %w", p.Label, err)
		}
		layout = l
	}

	var events []trace.Event
	if p.TracePath != "" {
		evs, err := trace.LoadFile(p.TracePath)
		if err != nil {
			return fmt.Errorf("failed to load trace for %s: %w", p.Label, err)
		}
		events = evs
	}

	if layout != nil {
		p.Player.LoadMaze(layout, p.MazePath)
	}
	if p.TracePath != "" {
		p.Player.LoadTrace(events, p.TracePath)
	}
	return nil
}

// LoadTraceFile swaps in another trace file; on failure nothing changes
func (p *Pane) LoadTraceFile(path string) error {
	events, err := trace.LoadFile(path)
	if err != nil {
		return err
	}
	p.TracePath = path
	p.Player.LoadTrace(events, path)
	return nil
}

// RunToEnd steps the player until it is finished and returns the number of
// events applied
func (p *Pane) RunToEnd(batch int) int {
	total := 0
	for !p.Player.Finished() {
		n := p.Player.StepBatch(batch)
		total += n
		if n == 0 {
			break
		}
	}
	return total
}
