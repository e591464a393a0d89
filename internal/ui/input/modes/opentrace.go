package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mazereplay/internal/ui/input/types"
)

// OpenTraceMode asks for a trace file to load into the focused pane
type OpenTraceMode struct {
	textInputMode TextInputMode
}

func NewOpenTraceMode(ti *textinput.Model) *OpenTraceMode {
	return &OpenTraceMode{
		textInputMode: NewTextInputMode(types.ModeOpenTrace, "open", "Trace file: ", ti),
	}
}

func (m *OpenTraceMode) Name() string {
	return m.textInputMode.Name()
}

func (m *OpenTraceMode) Prompt() string {
	return m.textInputMode.Prompt()
}

func (m *OpenTraceMode) Enter(ctx types.Context) []types.Action {
	return m.textInputMode.Enter(ctx)
}

func (m *OpenTraceMode) Exit(ctx types.Context) []types.Action {
	return m.textInputMode.Exit(ctx)
}

func (m *OpenTraceMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	return m.textInputMode.HandleKey(msg, ctx)
}
