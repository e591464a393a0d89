// Package replay applies decoded trace events to a search state and drives
// the replay cursor over an event stream.
package replay

import (
	"fmt"

	"mazereplay/internal/domain"
	"mazereplay/internal/trace"
)

// Result tells the driver what an applied event meant for playback
type Result struct {
	Found bool // a `found` event was applied
	Done  bool // the trace signalled its end
}

// Interpreter applies events to the search state it owns
type Interpreter struct {
	state *domain.SearchState
}

// NewInterpreter creates an interpreter over state; nil starts from the default grid
func NewInterpreter(state *domain.SearchState) *Interpreter {
	if state == nil {
		state = domain.NewSearchState()
	}
	return &Interpreter{state: state}
}

// State returns the owned search state
func (in *Interpreter) State() *domain.SearchState {
	return in.state
}

// Apply applies one event to the owned state
func (in *Interpreter) Apply(ev trace.Event) Result {
	return Apply(in.state, ev)
}

// Apply applies one event to s. It never fails: anomalies such as unknown
// ops, missing coordinates or a broken parent chain are reported through
// the state's message and replay goes on.
func Apply(s *domain.SearchState, ev trace.Event) Result {
	env := ev.Env()
	s.SetLastOp(env.Op)
	if env.HasStep {
		s.SetStep(env.Step)
	}

	// Any record with a cell and a parent feeds the predecessor map,
	// whatever its op. BFS/A* traces build the map this way.
	if env.HasAt && env.HasParent {
		s.SetParent(env.At, env.Parent)
	}

	var res Result
	switch e := ev.(type) {
	case trace.Meta:
		applyMeta(s, e)

	case trace.SetWall:
		s.SetWall(e.Cell, e.IsWall)
		if e.IsWall {
			s.SetMessage(fmt.Sprintf("Wall add %s", e.Cell))
		} else {
			s.SetMessage(fmt.Sprintf("Wall remove %s", e.Cell))
		}

	case trace.Walls:
		for _, c := range e.Cells {
			s.SetWall(c, true)
		}
		msg := fmt.Sprintf("Walls loaded: %d", len(e.Cells))
		if e.Skipped > 0 {
			msg += fmt.Sprintf(" (skipped %d malformed)", e.Skipped)
		}
		s.SetMessage(msg)

	case trace.FrontierAdd:
		s.AddFrontier(e.Cell)
		s.SetMessage(fmt.Sprintf("Frontier add %s", e.Cell))

	case trace.VisitedAdd:
		s.MarkVisited(e.Cell)
		s.SetMessage(fmt.Sprintf("Visited add %s%s", e.Cell, distSuffix(env)))

	case trace.SetCurrent:
		s.SetCurrent(e.Cell)
		s.SetMessage(fmt.Sprintf("Current = %s%s%s", e.Cell, distSuffix(env), rebuildBestPath(s, e.Cell)))

	case trace.FrontierRemove:
		s.RemoveFrontier(e.Cell)
		s.SetMessage(fmt.Sprintf("Frontier remove %s", e.Cell))

	case trace.PathPush:
		s.PushLive(e.Cell)
		s.SetMessage(fmt.Sprintf("Path push %s", e.Cell))

	case trace.PathPop:
		top, _ := s.LiveTop()
		switch {
		case !s.PopLive(e.Cell):
			s.SetMessage(fmt.Sprintf("Path pop %s: not on stack", e.Cell))
		case top != e.Cell:
			s.SetMessage(fmt.Sprintf("Path pop %s: out of order, removed by value", e.Cell))
		default:
			s.SetMessage(fmt.Sprintf("Path pop %s", e.Cell))
		}

	case trace.BestAdd:
		s.AppendBest(e.Cell)
		s.SetMessage(fmt.Sprintf("Best add %s", e.Cell))

	case trace.BestClear:
		s.ClearBest()
		s.SetMessage("Best path cleared")

	case trace.Path:
		for _, c := range e.Cells {
			s.MarkVisited(c)
		}
		msg := fmt.Sprintf("Path cells: %d", len(e.Cells))
		if e.Skipped > 0 {
			msg += fmt.Sprintf(" (skipped %d malformed)", e.Skipped)
		}
		s.SetMessage(msg)

	case trace.Found:
		if env.HasAt {
			s.SetCurrent(env.At)
		}
		suffix := ""
		if cur, ok := s.Current(); ok {
			suffix = rebuildBestPath(s, cur)
		}
		s.SetMessage("Found end!" + distSuffix(env) + suffix)
		res.Found = true

	case trace.Done:
		s.SetMessage("Done")
		res.Done = true

	case trace.Malformed:
		s.SetMessage("Skipped " + e.Reason)

	default:
		s.SetMessage(fmt.Sprintf("Unknown op: %s", env.Op))
	}
	return res
}

func applyMeta(s *domain.SearchState, e trace.Meta) {
	pick := func(v *int, fallback int) int {
		if v != nil {
			return *v
		}
		return fallback
	}
	start, end := s.Start(), s.End()
	s.ApplyMeta(
		pick(e.Rows, s.Rows()),
		pick(e.Cols, s.Cols()),
		domain.Cell{Row: pick(e.StartRow, start.Row), Col: pick(e.StartCol, start.Col)},
		domain.Cell{Row: pick(e.EndRow, end.Row), Col: pick(e.EndCol, end.Col)},
	)
}

// rebuildBestPath re-derives the best path from the parent map, if any
// parents are known. An incomplete chain clears the path; a later event
// retries once more parents are in. Returns a message suffix.
func rebuildBestPath(s *domain.SearchState, from domain.Cell) string {
	if s.ParentCount() == 0 {
		return ""
	}
	path, ok := ReconstructPath(s.Parent, s.Start(), from)
	if !ok {
		s.ClearBest()
		return ", path incomplete"
	}
	s.SetBestPath(path)
	return fmt.Sprintf(", path length %d", len(path)-1)
}

func distSuffix(env trace.Envelope) string {
	if env.HasDist && env.Dist >= 0 {
		return fmt.Sprintf(" dist=%d", env.Dist)
	}
	return ""
}
