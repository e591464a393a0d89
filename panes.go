package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mazereplay/internal/domain"
	"mazereplay/internal/logic"
	"mazereplay/internal/replay"
)

// parsePane splits a --pane value of the form LABEL:PATH
func parsePane(value string) (domain.PaneSpec, error) {
	label, path, ok := strings.Cut(value, ":")
	label = strings.TrimSpace(label)
	path = strings.TrimSpace(path)
	if !ok || label == "" || path == "" {
		return domain.PaneSpec{}, fmt.Errorf("invalid --pane %q, expected LABEL:PATH", value)
	}
	return domain.PaneSpec{Label: label, TracePath: path}, nil
}

// paneSpecs collects the panes named on the command line, --events first
func paneSpecs(opts *options) ([]domain.PaneSpec, error) {
	var specs []domain.PaneSpec
	if opts.events != "" {
		specs = append(specs, domain.PaneSpec{Label: replay.LabelFor(opts.events), TracePath: opts.events})
	}
	seen := make(map[string]bool)
	for _, s := range specs {
		seen[s.Label] = true
	}
	for _, value := range opts.panes {
		spec, err := parsePane(value)
		if err != nil {
			return nil, err
		}
		if seen[spec.Label] {
			return nil, fmt.Errorf("duplicate pane label %q", spec.Label)
		}
		seen[spec.Label] = true
		specs = append(specs, spec)
	}
	return specs, nil
}

// loadPanes creates and loads a pane per spec. With placeholder set and no
// specs, a single pane showing only the maze (or the default empty grid) is
// created so there is something to look at.
func loadPanes(specs []domain.PaneSpec, mazePath string, placeholder bool) (*logic.MemoryPaneStore, error) {
	store := logic.NewMemoryPaneStore()
	for _, spec := range specs {
		pane := replay.NewPane(spec.Label, spec.TracePath, mazePath)
		if err := pane.Load(); err != nil {
			return nil, err
		}
		store.AddPane(pane)
	}

	if store.Len() == 0 && placeholder {
		pane := replay.NewPane("", "", mazePath)
		if err := pane.Load(); err != nil {
			return nil, err
		}
		store.AddPane(pane)
	}
	return store, nil
}

// tracePaths lists the trace files the panes were loaded from
func tracePaths(store logic.PaneStore) []string {
	var paths []string
	for _, p := range store.GetAllPanes() {
		if p.TracePath != "" {
			paths = append(paths, p.TracePath)
		}
	}
	return paths
}

// paneResult is one pane's final state in --json output
type paneResult struct {
	Label    string          `json:"label"`
	Trace    string          `json:"trace,omitempty"`
	Events   int             `json:"events"`
	Applied  int             `json:"applied"`
	Found    bool            `json:"found"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

// runHeadless replays every pane to its end
func runHeadless(store logic.PaneStore, batch int) []paneResult {
	results := make([]paneResult, 0, store.Len())
	logic.ForEach(store, func(p *replay.Pane) {
		applied := p.RunToEnd(batch)
		results = append(results, paneResult{
			Label:    p.Label,
			Trace:    p.TracePath,
			Events:   p.Player.Len(),
			Applied:  applied,
			Found:    p.Player.Found(),
			Snapshot: p.Player.CurrentSnapshot(),
		})
	})
	return results
}

func writeJSON(w io.Writer, results []paneResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
