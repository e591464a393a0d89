package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the modes react to. It doubles as the
// help.KeyMap for the help bar.
type KeyMap struct {
	Play       key.Binding
	Step       key.Binding
	Reset      key.Binding
	Faster     key.Binding
	Slower     key.Binding
	BatchUp    key.Binding
	BatchDown  key.Binding
	NextPane   key.Binding
	PrevPane   key.Binding
	OpenTrace  key.Binding
	EditWalls  key.Binding
	Listing    key.Binding
	Legend     key.Binding
	Help       key.Binding
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	ToggleWall key.Binding
	ClearWalls key.Binding
	Back       key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Play:       key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
		Step:       key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n", "step")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Faster:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		BatchUp:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "batch +1")),
		BatchDown:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "batch -1")),
		NextPane:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pane")),
		OpenTrace:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open trace")),
		EditWalls:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit walls")),
		Listing:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "event listing")),
		Legend:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "legend")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		ToggleWall: key.NewBinding(key.WithKeys(" ", "enter", "w"), key.WithHelp("space", "toggle wall")),
		ClearWalls: key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "clear walls")),
		Back:       key.NewBinding(key.WithKeys("esc", "e"), key.WithHelp("esc", "done editing")),
	}
}

// ShortHelp is shown in the help bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Step, k.Reset, k.NextPane, k.Help, k.Quit}
}

// FullHelp is shown when help is expanded
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Step, k.Reset, k.Faster, k.Slower, k.BatchUp, k.BatchDown},
		{k.NextPane, k.PrevPane, k.OpenTrace, k.Listing, k.Legend},
		{k.EditWalls, k.ToggleWall, k.ClearWalls, k.Back},
		{k.Help, k.Quit},
	}
}

// EditHelp is the help bar while editing walls
func (k KeyMap) EditHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.ToggleWall, k.ClearWalls, k.Back}
}
