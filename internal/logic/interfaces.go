package logic

import "mazereplay/internal/replay"

// PaneStore provides access to the replay panes in display order
type PaneStore interface {
	GetPane(label string) *replay.Pane
	GetAllPanes() []*replay.Pane
	AddPane(pane *replay.Pane)
	RemovePane(label string)
	PanesForTrace(path string) []*replay.Pane
	Len() int
}
