package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mazereplay/internal/ui/input/types"
)

// EditWallsMode moves a cursor over the focused pane and toggles walls
type EditWallsMode struct {
	keys KeyMap
}

func NewEditWallsMode(keys KeyMap) *EditWallsMode {
	return &EditWallsMode{keys: keys}
}

func (m *EditWallsMode) Name() string {
	return "edit"
}

func (m *EditWallsMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *EditWallsMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *EditWallsMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys
	switch {
	case msg.Type == tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, k.Back):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case key.Matches(msg, k.Up):
		return []types.Action{types.MoveCursorAction{DRow: -1}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.MoveCursorAction{DRow: 1}}, true
	case key.Matches(msg, k.Left):
		return []types.Action{types.MoveCursorAction{DCol: -1}}, true
	case key.Matches(msg, k.Right):
		return []types.Action{types.MoveCursorAction{DCol: 1}}, true
	case key.Matches(msg, k.ToggleWall):
		return []types.Action{types.ToggleWallAction{}}, true
	case key.Matches(msg, k.ClearWalls):
		return []types.Action{types.ClearWallsAction{}}, true
	}
	return nil, false
}
