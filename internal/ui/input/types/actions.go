package types

// Playback actions, fanned out to every pane
type TogglePlayAction struct{}

func (a TogglePlayAction) Type() string { return "toggle_play" }

type StepAction struct{}

func (a StepAction) Type() string { return "step" }

type ResetAction struct{}

func (a ResetAction) Type() string { return "reset" }

// SpeedAction changes the tick interval by DeltaMs; negative is faster
type SpeedAction struct {
	DeltaMs int
}

func (a SpeedAction) Type() string { return "speed" }

type BatchAction struct {
	Delta int
}

func (a BatchAction) Type() string { return "batch" }

// Pane actions
type FocusAction struct {
	Delta int // +1 next pane, -1 previous
}

func (a FocusAction) Type() string { return "focus" }

type OpenListingAction struct{}

func (a OpenListingAction) Type() string { return "open_listing" }

// Wall editing actions
type MoveCursorAction struct {
	DRow int
	DCol int
}

func (a MoveCursorAction) Type() string { return "move_cursor" }

type ToggleWallAction struct{}

func (a ToggleWallAction) Type() string { return "toggle_wall" }

type ClearWallsAction struct{}

func (a ClearWallsAction) Type() string { return "clear_walls" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Other actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ToggleLegendAction struct{}

func (a ToggleLegendAction) Type() string { return "toggle_legend" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
