package replay

import (
	"fmt"
	"time"

	"mazereplay/internal/domain"
	"mazereplay/internal/maze"
	"mazereplay/internal/trace"
)

// DefaultSpeed is the advisory delay between playback ticks
const DefaultSpeed = 80 * time.Millisecond

// Player owns one search state plus a cursor into its event stream.
// It is not safe for concurrent use; the UI drives it from its update loop.
type Player struct {
	interp *Interpreter
	events []trace.Event
	cursor int
	source string

	done  bool // a `done` event was applied
	eof   bool // stepping ran past the last event
	found bool

	speed time.Duration
}

// NewPlayer creates a player over the default empty grid
func NewPlayer() *Player {
	return &Player{
		interp: NewInterpreter(nil),
		speed:  DefaultSpeed,
	}
}

// isPrelude reports events applied right away on load so the maze shows
// before playback starts
func isPrelude(ev trace.Event) bool {
	switch ev.(type) {
	case trace.Meta, trace.SetWall, trace.Walls:
		return true
	}
	return false
}

// LoadTrace replaces the event stream. Derived state is cleared, walls are
// kept, and the leading meta/wall events are applied immediately.
func (p *Player) LoadTrace(events []trace.Event, source string) {
	s := p.interp.State()
	s.ResetDerivedState()
	p.events = events
	p.source = source
	p.rewind()

	for p.cursor < len(p.events) && isPrelude(p.events[p.cursor]) {
		p.interp.Apply(p.events[p.cursor])
		p.cursor++
	}

	if source == "" {
		source = "memory"
	}
	s.SetMessage(fmt.Sprintf("Loaded %d events from %s", len(events), source))
}

// LoadMaze seeds grid size, walls and goal cells from a maze description.
// Goal cells the file does not set keep their current value.
func (p *Player) LoadMaze(layout *maze.Layout, source string) {
	s := p.interp.State()
	start, end := s.Start(), s.End()
	if layout.Start != nil {
		start = *layout.Start
	}
	if layout.End != nil {
		end = *layout.End
	}
	s.ApplyMeta(layout.Rows, layout.Cols, start, end)
	s.ReplaceWalls(layout.Walls)
	if source == "" {
		source = "memory"
	}
	s.SetMessage(fmt.Sprintf("Maze loaded from %s: %dx%d, %d walls", source, layout.Rows, layout.Cols, len(layout.Walls)))
}

// StepBatch applies up to n events (at least one) and returns how many were
// applied. It stops early after a `done` event or at the end of the stream,
// which it marks on the state rather than failing.
func (p *Player) StepBatch(n int) int {
	s := p.interp.State()
	if len(p.events) == 0 {
		s.SetMessage("No events loaded yet")
		return 0
	}
	if p.done {
		return 0
	}
	if n < 1 {
		n = 1
	}

	applied := 0
	for applied < n {
		if p.cursor >= len(p.events) {
			p.eof = true
			s.SetLastOp("EOF")
			s.SetMessage("Reached end of event stream")
			break
		}
		ev := p.events[p.cursor]
		p.cursor++
		applied++

		res := p.interp.Apply(ev)
		if res.Found {
			p.found = true
		}
		if res.Done {
			p.done = true
			break
		}
	}
	return applied
}

// ResetAll rewinds the cursor and clears derived state; walls stay
func (p *Player) ResetAll() {
	s := p.interp.State()
	s.ResetDerivedState()
	p.rewind()
	if len(p.events) == 0 {
		s.SetMessage("Reset (no file loaded)")
	}
}

func (p *Player) rewind() {
	p.cursor = 0
	p.done = false
	p.eof = false
	p.found = false
}

// SetSpeed records the advisory tick interval
func (p *Player) SetSpeed(ms int) {
	if ms < 1 {
		ms = 1
	}
	p.speed = time.Duration(ms) * time.Millisecond
}

// Speed returns the advisory tick interval
func (p *Player) Speed() time.Duration { return p.speed }

// CurrentSnapshot returns a detached copy of the search state
func (p *Player) CurrentSnapshot() domain.Snapshot {
	return p.interp.State().Snapshot()
}

// State exposes the live search state for renderers and wall editing
func (p *Player) State() *domain.SearchState { return p.interp.State() }

// Events returns the loaded event stream
func (p *Player) Events() []trace.Event { return p.events }

// Cursor is the index of the next event to apply
func (p *Player) Cursor() int { return p.cursor }

// Len is the number of loaded events
func (p *Player) Len() int { return len(p.events) }

// Source names where the events came from
func (p *Player) Source() string { return p.source }

// Found reports whether a `found` event was applied since the last rewind
func (p *Player) Found() bool { return p.found }

// Finished reports that the trace signalled done or stepping hit the end
// of the stream
func (p *Player) Finished() bool {
	return p.done || p.eof
}

// ToggleWall flips a wall from manual editing. Start, end and off-grid
// cells are refused; the reason lands in the state's message.
func (p *Player) ToggleWall(c domain.Cell) bool {
	s := p.interp.State()
	if !s.InBounds(c) {
		s.SetMessage(fmt.Sprintf("Cell %s is off the grid", c))
		return false
	}
	if c == s.Start() || c == s.End() {
		s.SetMessage("Cannot place wall on start/end")
		return false
	}
	if s.IsWall(c) {
		s.SetWall(c, false)
		s.SetMessage(fmt.Sprintf("Wall removed at %s", c))
	} else {
		s.SetWall(c, true)
		s.SetMessage(fmt.Sprintf("Wall added at %s", c))
	}
	return true
}

// ClearWalls removes every wall; the only way walls go away wholesale
func (p *Player) ClearWalls() {
	s := p.interp.State()
	n := s.WallCount()
	s.ClearWalls()
	s.SetMessage(fmt.Sprintf("Cleared %d walls", n))
}
