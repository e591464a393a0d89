package logic

import "mazereplay/internal/replay"

// ForEach runs fn on every pane in display order. Panes share nothing, so
// the order only matters for what the user sees first.
func ForEach(store PaneStore, fn func(*replay.Pane)) {
	for _, p := range store.GetAllPanes() {
		fn(p)
	}
}

// StepAll advances every unfinished pane by one batch. It returns the total
// number of events applied and the panes that finished during this step.
func StepAll(store PaneStore, batch int) (applied int, finished []*replay.Pane) {
	ForEach(store, func(p *replay.Pane) {
		if p.Player.Finished() {
			return
		}
		applied += p.Player.StepBatch(batch)
		if p.Player.Finished() {
			finished = append(finished, p)
		}
	})
	return applied, finished
}

// ResetAll rewinds every pane
func ResetAll(store PaneStore) {
	ForEach(store, func(p *replay.Pane) { p.Player.ResetAll() })
}

// SetSpeedAll sets the advisory tick interval on every pane
func SetSpeedAll(store PaneStore, ms int) {
	ForEach(store, func(p *replay.Pane) { p.Player.SetSpeed(ms) })
}

// AllFinished reports whether no pane has anything left to play.
// Panes without events count as finished.
func AllFinished(store PaneStore) bool {
	for _, p := range store.GetAllPanes() {
		if p.Player.Len() > 0 && !p.Player.Finished() {
			return false
		}
	}
	return true
}
