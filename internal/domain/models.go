package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Default grid used before any meta or maze file is loaded
const (
	DefaultRows = 10
	DefaultCols = 10
)

// Cell is a (row, col) grid coordinate
type Cell struct {
	Row int
	Col int
}

// String renders the cell the way status messages show it
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// MarshalJSON encodes a cell as [row, col], the same shape traces use
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a [row, col] pair
func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to decode cell: %w", err)
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// cellSet is a membership set of cells
type cellSet map[Cell]struct{}

func (s cellSet) has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// sorted returns the members ordered by row then column
func (s cellSet) sorted() []Cell {
	out := make([]Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sortCells(out)
	return out
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}

// cellSeq is an ordered cell sequence with a membership count per cell,
// so removing one occurrence keeps membership right when a cell repeats
type cellSeq struct {
	cells  []Cell
	counts map[Cell]int
}

func newCellSeq() cellSeq {
	return cellSeq{counts: make(map[Cell]int)}
}

func (q *cellSeq) push(c Cell) {
	q.cells = append(q.cells, c)
	q.counts[c]++
}

func (q *cellSeq) has(c Cell) bool {
	return q.counts[c] > 0
}

func (q *cellSeq) last() (Cell, bool) {
	if len(q.cells) == 0 {
		return Cell{}, false
	}
	return q.cells[len(q.cells)-1], true
}

// removeAt drops the element at index i, keeping the order of the rest
func (q *cellSeq) removeAt(i int) {
	c := q.cells[i]
	q.cells = append(q.cells[:i], q.cells[i+1:]...)
	if q.counts[c] <= 1 {
		delete(q.counts, c)
	} else {
		q.counts[c]--
	}
}

// removeLast drops the last occurrence of c; returns false if c is absent
func (q *cellSeq) removeLast(c Cell) bool {
	for i := len(q.cells) - 1; i >= 0; i-- {
		if q.cells[i] == c {
			q.removeAt(i)
			return true
		}
	}
	return false
}

func (q *cellSeq) reset(cells []Cell) {
	q.cells = nil
	q.counts = make(map[Cell]int, len(cells))
	for _, c := range cells {
		q.push(c)
	}
}

func (q *cellSeq) snapshot() []Cell {
	out := make([]Cell, len(q.cells))
	copy(out, q.cells)
	return out
}

// SearchState is the replayed snapshot of one maze search.
//
// Walls are independent of search progress: ApplyMeta and ResetDerivedState
// leave them alone, only SetWall, ReplaceWalls and ClearWalls change them.
// A cell is never in the frontier and the visited set at the same time.
type SearchState struct {
	rows  int
	cols  int
	start Cell
	end   Cell

	walls    cellSet
	frontier cellSet
	visited  cellSet

	current    Cell
	hasCurrent bool

	parent map[Cell]Cell

	bestPath cellSeq
	livePath cellSeq

	step    int
	lastOp  string
	message string
}

// NewSearchState creates an empty 10x10 state with start and end in opposite corners
func NewSearchState() *SearchState {
	s := &SearchState{
		rows:  DefaultRows,
		cols:  DefaultCols,
		start: Cell{0, 0},
		end:   Cell{DefaultRows - 1, DefaultCols - 1},
		walls: make(cellSet),
	}
	s.ResetDerivedState()
	s.message = "Ready"
	return s
}

// NewSearchStateFromMeta creates an empty state with the given grid and goal cells
func NewSearchStateFromMeta(rows, cols int, start, end Cell) *SearchState {
	s := NewSearchState()
	s.ApplyMeta(rows, cols, start, end)
	return s
}

// ApplyMeta sets the grid size and goal cells and clears every derived set.
// Non-positive dimensions keep the previous size. Walls are untouched.
func (s *SearchState) ApplyMeta(rows, cols int, start, end Cell) {
	if rows > 0 {
		s.rows = rows
	}
	if cols > 0 {
		s.cols = cols
	}
	s.start = start
	s.end = end
	s.clearDerived()
	s.message = fmt.Sprintf("Meta loaded: %dx%d, start=%s, end=%s", s.rows, s.cols, start, end)
}

// ResetDerivedState clears the search progress and the replay cursor, keeping walls
func (s *SearchState) ResetDerivedState() {
	s.clearDerived()
	s.step = 0
	s.lastOp = "-"
	s.message = "Reset"
}

func (s *SearchState) clearDerived() {
	s.frontier = make(cellSet)
	s.visited = make(cellSet)
	s.current = Cell{}
	s.hasCurrent = false
	s.parent = make(map[Cell]Cell)
	s.bestPath = newCellSeq()
	s.livePath = newCellSeq()
}

// SetWall adds or removes a wall. Start/end protection is the caller's job.
func (s *SearchState) SetWall(c Cell, isWall bool) {
	if isWall {
		s.walls[c] = struct{}{}
	} else {
		delete(s.walls, c)
	}
}

// ReplaceWalls swaps the whole wall set, used when a maze file is loaded
func (s *SearchState) ReplaceWalls(cells []Cell) {
	s.walls = make(cellSet, len(cells))
	for _, c := range cells {
		s.walls[c] = struct{}{}
	}
}

// ClearWalls removes every wall
func (s *SearchState) ClearWalls() {
	s.walls = make(cellSet)
}

// SetStart moves the start cell without touching derived state
func (s *SearchState) SetStart(c Cell) { s.start = c }

// SetEnd moves the end cell without touching derived state
func (s *SearchState) SetEnd(c Cell) { s.end = c }

// AddFrontier puts a cell in the frontier. A visited cell is reopened.
func (s *SearchState) AddFrontier(c Cell) {
	delete(s.visited, c)
	s.frontier[c] = struct{}{}
}

// RemoveFrontier discards a cell from the frontier only
func (s *SearchState) RemoveFrontier(c Cell) {
	delete(s.frontier, c)
}

// MarkVisited moves a cell from the frontier to the visited set
func (s *SearchState) MarkVisited(c Cell) {
	delete(s.frontier, c)
	s.visited[c] = struct{}{}
}

// SetCurrent makes c the cell being expanded and takes it off the frontier
func (s *SearchState) SetCurrent(c Cell) {
	s.current = c
	s.hasCurrent = true
	delete(s.frontier, c)
}

// SetParent records the predecessor of child
func (s *SearchState) SetParent(child, parent Cell) {
	s.parent[child] = parent
}

// PushLive appends a cell to the live exploration stack
func (s *SearchState) PushLive(c Cell) {
	s.livePath.push(c)
}

// PopLive pops c off the live stack. When c is not on top the last
// occurrence of c is removed instead; the order of the rest is kept.
// Returns false when c is not on the stack at all.
func (s *SearchState) PopLive(c Cell) bool {
	if top, ok := s.livePath.last(); ok && top == c {
		s.livePath.removeAt(len(s.livePath.cells) - 1)
		return true
	}
	return s.livePath.removeLast(c)
}

// LiveTop returns the top of the live exploration stack
func (s *SearchState) LiveTop() (Cell, bool) {
	return s.livePath.last()
}

// AppendBest appends a cell to the best path
func (s *SearchState) AppendBest(c Cell) {
	s.bestPath.push(c)
}

// ClearBest empties the best path
func (s *SearchState) ClearBest() {
	s.bestPath.reset(nil)
}

// SetBestPath replaces the best path, start first
func (s *SearchState) SetBestPath(path []Cell) {
	s.bestPath.reset(path)
}

// SetStep sets the replay step counter
func (s *SearchState) SetStep(step int) { s.step = step }

// SetLastOp records the op of the last applied event
func (s *SearchState) SetLastOp(op string) { s.lastOp = op }

// SetMessage sets the human-readable status
func (s *SearchState) SetMessage(msg string) { s.message = msg }

func (s *SearchState) Rows() int { return s.rows }
func (s *SearchState) Cols() int { return s.cols }
func (s *SearchState) Start() Cell { return s.start }
func (s *SearchState) End() Cell { return s.end }

// InBounds reports whether c lies on the grid
func (s *SearchState) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < s.rows && c.Col >= 0 && c.Col < s.cols
}

func (s *SearchState) IsWall(c Cell) bool { return s.walls.has(c) }
func (s *SearchState) InFrontier(c Cell) bool { return s.frontier.has(c) }
func (s *SearchState) IsVisited(c Cell) bool { return s.visited.has(c) }
func (s *SearchState) InBestPath(c Cell) bool { return s.bestPath.has(c) }
func (s *SearchState) InLivePath(c Cell) bool { return s.livePath.has(c) }
func (s *SearchState) Walls() []Cell { return s.walls.sorted() }
func (s *SearchState) Frontier() []Cell { return s.frontier.sorted() }
func (s *SearchState) Visited() []Cell { return s.visited.sorted() }
func (s *SearchState) BestPath() []Cell { return s.bestPath.snapshot() }
func (s *SearchState) LivePath() []Cell { return s.livePath.snapshot() }
func (s *SearchState) WallCount() int { return len(s.walls) }
func (s *SearchState) ParentCount() int { return len(s.parent) }
func (s *SearchState) Step() int { return s.step }
func (s *SearchState) LastOp() string { return s.lastOp }
func (s *SearchState) Message() string { return s.message }

// Current returns the cell being expanded, if any
func (s *SearchState) Current() (Cell, bool) {
	return s.current, s.hasCurrent
}

// Parent returns the recorded predecessor of c
func (s *SearchState) Parent(c Cell) (Cell, bool) {
	p, ok := s.parent[c]
	return p, ok
}

// Parents returns a copy of the predecessor map
func (s *SearchState) Parents() map[Cell]Cell {
	out := make(map[Cell]Cell, len(s.parent))
	for k, v := range s.parent {
		out[k] = v
	}
	return out
}

// Snapshot is a detached, serializable copy of a SearchState.
// Sets are sorted by (row, col); paths keep their order.
type Snapshot struct {
	Rows     int    `json:"n"`
	Cols     int    `json:"m"`
	Start    Cell   `json:"start"`
	End      Cell   `json:"end"`
	Walls    []Cell `json:"walls"`
	Frontier []Cell `json:"frontier"`
	Visited  []Cell `json:"visited"`
	Current  *Cell  `json:"current,omitempty"`
	Parents  int    `json:"parents"`
	BestPath []Cell `json:"best_path"`
	LivePath []Cell `json:"live_path"`
	Step     int    `json:"step"`
	LastOp   string `json:"last_op"`
	Message  string `json:"message"`
}

// Snapshot copies the state for rendering or serialization
func (s *SearchState) Snapshot() Snapshot {
	snap := Snapshot{
		Rows:     s.rows,
		Cols:     s.cols,
		Start:    s.start,
		End:      s.end,
		Walls:    s.walls.sorted(),
		Frontier: s.frontier.sorted(),
		Visited:  s.visited.sorted(),
		Parents:  len(s.parent),
		BestPath: s.bestPath.snapshot(),
		LivePath: s.livePath.snapshot(),
		Step:     s.step,
		LastOp:   s.lastOp,
		Message:  s.message,
	}
	if s.hasCurrent {
		c := s.current
		snap.Current = &c
	}
	return snap
}

// PaneSpec names one trace to replay in its own comparison pane
type PaneSpec struct {
	Label     string
	TracePath string
}
