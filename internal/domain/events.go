package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventTraceLoaded      EventType = "TraceLoaded"
	EventTraceLoadFailed  EventType = "TraceLoadFailed"
	EventPaneStepped      EventType = "PaneStepped"
	EventPaneFinished     EventType = "PaneFinished"
	EventPanesReset       EventType = "PanesReset"
	EventTraceChanged     EventType = "TraceChanged"
	EventTracesDiscovered EventType = "TracesDiscovered"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// TraceLoadedEvent is emitted when a trace replaced a pane's event stream
type TraceLoadedEvent struct {
	Pane   string
	Source string
	Events int
}

func (e TraceLoadedEvent) Type() EventType { return EventTraceLoaded }

// TraceLoadFailedEvent is emitted when a trace file could not be loaded.
// The pane keeps its previous state.
type TraceLoadFailedEvent struct {
	Pane   string
	Source string
	Err    error
}

func (e TraceLoadFailedEvent) Type() EventType { return EventTraceLoadFailed }

// PaneSteppedEvent is emitted after a batch of events was applied to a pane
type PaneSteppedEvent struct {
	Pane    string
	Applied int
	Cursor  int
}

func (e PaneSteppedEvent) Type() EventType { return EventPaneStepped }

// PaneFinishedEvent is emitted once a pane hits `done` or the end of its stream
type PaneFinishedEvent struct {
	Pane   string
	Found  bool
	Path   int // best path length in cells, 0 when none
	Cursor int
}

func (e PaneFinishedEvent) Type() EventType { return EventPaneFinished }

// PanesResetEvent is emitted when every pane was rewound
type PanesResetEvent struct {
	Panes int
}

func (e PanesResetEvent) Type() EventType { return EventPanesReset }

// TraceChangedEvent is emitted when a watched trace file was rewritten on disk
type TraceChangedEvent struct {
	Path string
}

func (e TraceChangedEvent) Type() EventType { return EventTraceChanged }

// TracesDiscoveredEvent is emitted when a directory scan found trace files
type TracesDiscoveredEvent struct {
	Dir   string
	Specs []PaneSpec
}

func (e TracesDiscoveredEvent) Type() EventType { return EventTracesDiscovered }

// ErrorEvent is emitted when a background service fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
