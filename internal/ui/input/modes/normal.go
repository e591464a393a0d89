package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mazereplay/internal/ui/input/types"
)

// speedStep is how much +/- change the tick interval, in milliseconds
const speedStep = 10

type NormalMode struct {
	keys KeyMap
}

func NewNormalMode(keys KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys
	switch {
	case msg.Type == tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, k.Play):
		return []types.Action{types.TogglePlayAction{}}, true

	case key.Matches(msg, k.Step):
		return []types.Action{types.StepAction{}}, true

	case key.Matches(msg, k.Reset):
		return []types.Action{types.ResetAction{}}, true

	case key.Matches(msg, k.Faster):
		return []types.Action{types.SpeedAction{DeltaMs: -speedStep}}, true

	case key.Matches(msg, k.Slower):
		return []types.Action{types.SpeedAction{DeltaMs: speedStep}}, true

	case key.Matches(msg, k.BatchUp):
		return []types.Action{types.BatchAction{Delta: 1}}, true

	case key.Matches(msg, k.BatchDown):
		return []types.Action{types.BatchAction{Delta: -1}}, true

	case key.Matches(msg, k.NextPane):
		if ctx.PaneCount() < 2 {
			return nil, false
		}
		return []types.Action{types.FocusAction{Delta: 1}}, true

	case key.Matches(msg, k.PrevPane):
		if ctx.PaneCount() < 2 {
			return nil, false
		}
		return []types.Action{types.FocusAction{Delta: -1}}, true

	case key.Matches(msg, k.OpenTrace):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeOpenTrace, Data: ctx.FocusedTrace()}}, true

	case key.Matches(msg, k.EditWalls):
		// editing under a running replay would be overwritten by the next tick
		actions := []types.Action{}
		if ctx.Playing() {
			actions = append(actions, types.TogglePlayAction{})
		}
		return append(actions, types.ChangeModeAction{Mode: types.ModeEditWalls}), true

	case key.Matches(msg, k.Listing):
		if !ctx.HasEvents() {
			return nil, false
		}
		return []types.Action{types.OpenListingAction{}}, true

	case key.Matches(msg, k.Legend):
		return []types.Action{types.ToggleLegendAction{}}, true

	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}
