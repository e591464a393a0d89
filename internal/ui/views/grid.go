package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mazereplay/internal/domain"
)

// CellKind is what a grid cell is drawn as
type CellKind int

const (
	KindEmpty CellKind = iota
	KindWall
	KindStart
	KindEnd
	KindCurrent
	KindBestPath
	KindLivePath
	KindFrontier
	KindVisited
)

type cellIndex map[domain.Cell]struct{}

func indexOf(cells []domain.Cell) cellIndex {
	idx := make(cellIndex, len(cells))
	for _, c := range cells {
		idx[c] = struct{}{}
	}
	return idx
}

func (i cellIndex) has(c domain.Cell) bool {
	_, ok := i[c]
	return ok
}

// Classifier decides how cells of one snapshot are drawn
type Classifier struct {
	snap     domain.Snapshot
	showLive bool
	walls    cellIndex
	frontier cellIndex
	visited  cellIndex
	best     cellIndex
	live     cellIndex
}

// NewClassifier indexes a snapshot for per-cell lookups
func NewClassifier(snap domain.Snapshot, showLive bool) *Classifier {
	return &Classifier{
		snap:     snap,
		showLive: showLive,
		walls:    indexOf(snap.Walls),
		frontier: indexOf(snap.Frontier),
		visited:  indexOf(snap.Visited),
		best:     indexOf(snap.BestPath),
		live:     indexOf(snap.LivePath),
	}
}

// Kind returns the kind of c. Walls win over goal cells, goal cells over
// search progress, paths over frontier and visited.
func (k *Classifier) Kind(c domain.Cell) CellKind {
	switch {
	case k.walls.has(c):
		return KindWall
	case c == k.snap.Start:
		return KindStart
	case c == k.snap.End:
		return KindEnd
	case k.snap.Current != nil && *k.snap.Current == c:
		return KindCurrent
	case k.best.has(c):
		return KindBestPath
	case k.showLive && k.live.has(c):
		return KindLivePath
	case k.frontier.has(c):
		return KindFrontier
	case k.visited.has(c):
		return KindVisited
	}
	return KindEmpty
}

func glyph(kind CellKind) string {
	switch kind {
	case KindStart:
		return "S"
	case KindEnd:
		return "E"
	case KindCurrent:
		return "@"
	}
	return ""
}

func fit(text string, width int) string {
	if len(text) >= width {
		return text[:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}

// RenderGrid draws the grid of one snapshot, cellWidth columns per cell.
// cursor, when set, marks the cell being edited.
func (r *Renderer) RenderGrid(snap domain.Snapshot, cellWidth int, showLive bool, cursor *domain.Cell) string {
	if cellWidth < 1 {
		cellWidth = 1
	}
	k := NewClassifier(snap, showLive)

	var b strings.Builder
	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			c := domain.Cell{Row: row, Col: col}
			kind := k.Kind(c)
			style := r.cellStyle(kind)
			text := fit(glyph(kind), cellWidth)
			if cursor != nil && *cursor == c {
				style = style.Inherit(r.styles.Cursor)
				text = fit("[]", cellWidth)
			}
			b.WriteString(style.Render(text))
		}
		if row < snap.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (r *Renderer) cellStyle(kind CellKind) lipgloss.Style {
	s := r.styles
	switch kind {
	case KindWall:
		return s.Wall
	case KindStart:
		return s.Start
	case KindEnd:
		return s.End
	case KindCurrent:
		return s.Current
	case KindBestPath:
		return s.BestPath
	case KindLivePath:
		return s.LivePath
	case KindFrontier:
		return s.Frontier
	case KindVisited:
		return s.Visited
	}
	return s.Empty
}
