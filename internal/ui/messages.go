package ui

import (
	"time"

	"mazereplay/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg drives playback. Ticks from an earlier play session carry a stale
// id and are dropped.
type tickMsg struct {
	id int
	at time.Time
}

// listingPagerMsg reports that the event listing pager was closed
type listingPagerMsg struct {
	pane string
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
