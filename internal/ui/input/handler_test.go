package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"mazereplay/internal/ui/input/modes"
	"mazereplay/internal/ui/input/types"
)

type fakeContext struct {
	panes   int
	trace   string
	playing bool
	events  bool
}

func (c fakeContext) PaneCount() int       { return c.panes }
func (c fakeContext) FocusedPane() int     { return 0 }
func (c fakeContext) FocusedTrace() string { return c.trace }
func (c fakeContext) Playing() bool        { return c.playing }
func (c fakeContext) HasEvents() bool      { return c.events }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeActions(t *testing.T) {
	h := New(modes.DefaultKeyMap())
	ctx := fakeContext{panes: 1, events: true}

	tests := []struct {
		key  tea.KeyMsg
		want types.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, types.TogglePlayAction{}},
		{runes("n"), types.StepAction{}},
		{runes("r"), types.ResetAction{}},
		{runes("+"), types.SpeedAction{DeltaMs: -10}},
		{runes("-"), types.SpeedAction{DeltaMs: 10}},
		{runes("]"), types.BatchAction{Delta: 1}},
		{runes("["), types.BatchAction{Delta: -1}},
		{runes("L"), types.OpenListingAction{}},
		{runes("g"), types.ToggleLegendAction{}},
		{runes("?"), types.ToggleHelpAction{}},
		{runes("q"), types.QuitAction{}},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, types.QuitAction{Force: true}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			actions, _ := h.HandleKey(tt.key, ctx)
			require.Equal(t, []types.Action{tt.want}, actions)
		})
	}
}

func TestPaneActionsNeedPanes(t *testing.T) {
	h := New(modes.DefaultKeyMap())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, fakeContext{panes: 1})
	require.Empty(t, actions, "nothing to cycle through")

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, fakeContext{panes: 2})
	require.Equal(t, []types.Action{types.FocusAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(runes("L"), fakeContext{panes: 1})
	require.Empty(t, actions, "no listing without events")
}

func TestOpenTracePrompt(t *testing.T) {
	h := New(modes.DefaultKeyMap())
	ctx := fakeContext{panes: 1, trace: "out/"}

	actions, _ := h.HandleKey(runes("o"), ctx)
	require.Equal(t, []types.Action{types.ChangeModeAction{Mode: types.ModeOpenTrace, Data: "out/"}}, actions)
	require.Equal(t, types.ModeOpenTrace, h.CurrentMode())
	require.Equal(t, "Trace file: ", h.Prompt())

	for _, r := range "bfs" {
		actions, _ = h.HandleKey(runes(string(r)), ctx)
	}
	require.Equal(t, []types.Action{types.UpdateTextAction{Text: "out/bfs"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Equal(t, []types.Action{
		types.SubmitTextAction{Text: "out/bfs", Mode: types.ModeOpenTrace},
		types.ChangeModeAction{Mode: types.ModeNormal},
	}, actions)
	require.Equal(t, types.ModeNormal, h.CurrentMode())
	require.Nil(t, h.TextInput())
}

func TestEditModePausesPlayback(t *testing.T) {
	h := New(modes.DefaultKeyMap())

	actions, _ := h.HandleKey(runes("e"), fakeContext{panes: 1, playing: true})
	require.Equal(t, []types.Action{
		types.TogglePlayAction{},
		types.ChangeModeAction{Mode: types.ModeEditWalls},
	}, actions)

	actions, _ = h.HandleKey(runes("k"), fakeContext{panes: 1})
	require.Equal(t, []types.Action{types.MoveCursorAction{DRow: -1}}, actions)

	actions, _ = h.HandleKey(runes("W"), fakeContext{panes: 1})
	require.Equal(t, []types.Action{types.ClearWallsAction{}}, actions)

	h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{panes: 1})
	require.Equal(t, types.ModeNormal, h.CurrentMode())
}
