package replay

import "mazereplay/internal/domain"

// ParentFunc looks up the recorded predecessor of a cell
type ParentFunc func(domain.Cell) (domain.Cell, bool)

// ReconstructPath follows parent links from `from` back to start and returns
// the path in start-first order.
//
// Every cell is visited at most once, so a cyclic or dangling chain ends the
// walk; ok is false then and the returned path is nil. A partial path is
// never returned.
func ReconstructPath(parent ParentFunc, start, from domain.Cell) (path []domain.Cell, ok bool) {
	guard := make(map[domain.Cell]struct{})
	cur := from
	for {
		if _, seen := guard[cur]; seen {
			return nil, false
		}
		guard[cur] = struct{}{}
		path = append(path, cur)

		if cur == start {
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, true
		}

		next, found := parent(cur)
		if !found {
			return nil, false
		}
		cur = next
	}
}
