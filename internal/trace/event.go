// Package trace decodes search traces: newline-delimited JSON records, one
// event each, as emitted by the maze solvers.
//
// Records are loosely typed on the wire. Decode turns each one into a
// variant that carries only the fields its op needs, so handlers never
// have to check for missing coordinates themselves. A record whose op is
// known but which lacks a required field becomes Malformed; an op nobody
// knows becomes Unknown. Neither is an error: only an undecodable line is.
package trace

import (
	"fmt"
	"strings"

	"mazereplay/internal/domain"
)

// Ops understood by the interpreter
const (
	OpMeta           = "meta"
	OpWall           = "wall"
	OpSetWall        = "set_wall"
	OpWalls          = "walls"
	OpFrontierAdd    = "frontier_add"
	OpRelax          = "relax"
	OpVisitedAdd     = "visited_add"
	OpSetCurrent     = "set_current"
	OpFrontierRemove = "frontier_remove"
	OpFrontierPop    = "frontier_pop"
	OpPathPush       = "path_push"
	OpPathPop        = "path_pop"
	OpBestAdd        = "best_add"
	OpBestClear      = "best_clear"
	OpPath           = "path"
	OpFound          = "found"
	OpDone           = "done"
)

// Event is one decoded trace record
type Event interface {
	Env() Envelope
}

// Envelope holds the fields any record may carry, whatever its op.
// Parent is only set when both px and py are present and non-negative.
type Envelope struct {
	Op   string
	Line int // 1-based line in the source, 0 when built in memory

	Step    int
	HasStep bool

	At    domain.Cell
	HasAt bool

	Parent    domain.Cell
	HasParent bool

	Dist    int
	HasDist bool
}

// Env returns the common fields of the record
func (e Envelope) Env() Envelope { return e }

// Meta sets the grid size and goal cells; absent fields keep their current value
type Meta struct {
	Envelope
	Rows, Cols         *int
	StartRow, StartCol *int
	EndRow, EndCol     *int
}

// SetWall adds or removes one wall (ops `wall` and `set_wall`)
type SetWall struct {
	Envelope
	Cell   domain.Cell
	IsWall bool
}

// Walls bulk-adds walls. Skipped counts entries that were not cells.
type Walls struct {
	Envelope
	Cells   []domain.Cell
	Skipped int
}

// FrontierAdd puts a cell on the frontier (ops `frontier_add` and `relax`)
type FrontierAdd struct {
	Envelope
	Cell domain.Cell
}

// VisitedAdd moves a cell from the frontier to the visited set
type VisitedAdd struct {
	Envelope
	Cell domain.Cell
}

// SetCurrent marks the cell being expanded
type SetCurrent struct {
	Envelope
	Cell domain.Cell
}

// FrontierRemove drops a cell from the frontier (ops `frontier_remove` and `frontier_pop`)
type FrontierRemove struct {
	Envelope
	Cell domain.Cell
}

// PathPush pushes a cell on the live exploration stack
type PathPush struct {
	Envelope
	Cell domain.Cell
}

// PathPop pops a cell off the live exploration stack
type PathPop struct {
	Envelope
	Cell domain.Cell
}

// BestAdd appends a cell to the best path
type BestAdd struct {
	Envelope
	Cell domain.Cell
}

// BestClear empties the best path
type BestClear struct {
	Envelope
}

// Path is the terminal path overlay, shown as visited cells
type Path struct {
	Envelope
	Cells   []domain.Cell
	Skipped int
}

// Found reports that the end was reached. The cell is optional.
type Found struct {
	Envelope
}

// Done marks the end of the trace
type Done struct {
	Envelope
}

// Unknown is a record whose op is not understood
type Unknown struct {
	Envelope
}

// Malformed is a record with a known op but a missing required field
type Malformed struct {
	Envelope
	Reason string
}

// Describe renders one event as a single line for listings
func Describe(ev Event) string {
	env := ev.Env()
	var b strings.Builder
	if env.HasStep {
		fmt.Fprintf(&b, "t=%-5d ", env.Step)
	} else {
		b.WriteString("t=-     ")
	}
	op := env.Op
	if op == "" {
		op = "<no op>"
	}
	fmt.Fprintf(&b, "%-16s", op)
	if env.HasAt {
		fmt.Fprintf(&b, " %s", env.At)
	}
	if env.HasParent {
		fmt.Fprintf(&b, " parent=%s", env.Parent)
	}
	if env.HasDist {
		fmt.Fprintf(&b, " dist=%d", env.Dist)
	}

	switch e := ev.(type) {
	case Meta:
		if e.Rows != nil && e.Cols != nil {
			fmt.Fprintf(&b, " %dx%d", *e.Rows, *e.Cols)
		}
	case SetWall:
		if !e.IsWall {
			b.WriteString(" remove")
		}
	case Walls:
		fmt.Fprintf(&b, " cells=%d", len(e.Cells))
		if e.Skipped > 0 {
			fmt.Fprintf(&b, " skipped=%d", e.Skipped)
		}
	case Path:
		fmt.Fprintf(&b, " cells=%d", len(e.Cells))
	case Malformed:
		fmt.Fprintf(&b, " [%s]", e.Reason)
	case Unknown:
		b.WriteString(" [unknown op]")
	}
	return b.String()
}
