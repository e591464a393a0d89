package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"mazereplay/internal/domain"
)

// PaneView is what the renderer needs to know about one pane
type PaneView struct {
	Label      string
	Source     string
	Snapshot   domain.Snapshot
	Cursor     int
	Total      int
	Finished   bool
	Found      bool
	Focused    bool
	EditCursor *domain.Cell
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Panes         []PaneView
	Playing       bool
	SpeedMs       int
	Batch         int
	Mode          string
	Prompt        string
	TextInput     string
	StatusMessage string
	StatusIsError bool
	ShowLegend    bool
	ShowLivePath  bool
	ShowHelp      bool
	CellWidth     int
	HelpModel     help.Model
	Keys          help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderHeader(state))
	content.WriteString("\n\n")

	panes := make([]string, 0, len(state.Panes))
	for _, p := range state.Panes {
		panes = append(panes, r.renderPane(p, state))
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panes...))

	if state.ShowLegend {
		content.WriteString("\n")
		content.WriteString(r.renderLegend(state.ShowLivePath))
	}

	if state.Prompt != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Prompt.Render(state.Prompt))
		content.WriteString(state.TextInput)
	}

	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		content.WriteString("\n")
		content.WriteString(style.Render(state.StatusMessage))
	}

	if state.Keys != nil {
		h := state.HelpModel
		h.ShowAll = state.ShowHelp
		content.WriteString("\n\n")
		content.WriteString(r.styles.Help.Render(h.View(state.Keys)))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderHeader(state ViewState) string {
	playback := "paused"
	if state.Playing {
		playback = r.styles.StatusSuccess.Render("playing")
	}
	info := fmt.Sprintf("%s  speed %dms  batch %d", playback, state.SpeedMs, state.Batch)
	if state.Mode != "" && state.Mode != "normal" {
		info += "  [" + state.Mode + "]"
	}
	return r.styles.Title.Render("mazereplay") + "  " + r.styles.Dim.Render(info)
}

func (r *Renderer) renderPane(p PaneView, state ViewState) string {
	snap := p.Snapshot
	gridWidth := snap.Cols * max(state.CellWidth, 1)

	var b strings.Builder
	b.WriteString(r.styles.PaneLabel.Render(p.Label))
	progress := fmt.Sprintf("  %d/%d", p.Cursor, p.Total)
	switch {
	case p.Found && p.Finished:
		progress += " found"
	case p.Finished:
		progress += " done"
	}
	b.WriteString(r.styles.Dim.Render(progress))
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render(fmt.Sprintf("t=%d op=%s", snap.Step, snap.LastOp)))
	b.WriteString("\n")
	b.WriteString(r.RenderGrid(snap, state.CellWidth, state.ShowLivePath, p.EditCursor))
	b.WriteString("\n")

	msg := snap.Message
	if len(snap.BestPath) > 0 {
		msg = fmt.Sprintf("%s | best %d", msg, len(snap.BestPath))
	}
	b.WriteString(r.styles.Message.Width(max(gridWidth, 20)).Render(msg))

	style := r.styles.Pane
	if p.Focused {
		style = r.styles.PaneFocused
	}
	return style.Render(b.String())
}

func (r *Renderer) renderLegend(showLive bool) string {
	items := []struct {
		style lipgloss.Style
		name  string
	}{
		{r.styles.Wall, "wall"},
		{r.styles.Start, "start"},
		{r.styles.End, "end"},
		{r.styles.Current, "current"},
		{r.styles.BestPath, "best path"},
		{r.styles.Frontier, "frontier"},
		{r.styles.Visited, "visited"},
	}
	if showLive {
		items = append(items, struct {
			style lipgloss.Style
			name  string
		}{r.styles.LivePath, "live path"})
	}

	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.style.Render("  ")+" "+it.name)
	}
	return r.styles.Dim.Render("legend: ") + strings.Join(parts, "  ")
}
