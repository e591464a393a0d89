package input

import "mazereplay/internal/logic"

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Store     logic.PaneStore
	Focused   int
	IsPlaying bool
}

// PaneCount returns the number of panes on screen
func (c *ModelContext) PaneCount() int {
	return c.Store.Len()
}

// FocusedPane returns the index of the pane pane-local actions apply to
func (c *ModelContext) FocusedPane() int {
	return c.Focused
}

// FocusedTrace returns the trace path of the focused pane, if any
func (c *ModelContext) FocusedTrace() string {
	panes := c.Store.GetAllPanes()
	if c.Focused < 0 || c.Focused >= len(panes) {
		return ""
	}
	return panes[c.Focused].TracePath
}

func (c *ModelContext) Playing() bool {
	return c.IsPlaying
}

// HasEvents reports whether the focused pane has a trace loaded
func (c *ModelContext) HasEvents() bool {
	panes := c.Store.GetAllPanes()
	if c.Focused < 0 || c.Focused >= len(panes) {
		return false
	}
	return panes[c.Focused].Player.Len() > 0
}
