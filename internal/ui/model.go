package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mazereplay/internal/config"
	"mazereplay/internal/domain"
	"mazereplay/internal/eventbus"
	"mazereplay/internal/logic"
	"mazereplay/internal/replay"
	"mazereplay/internal/ui/input"
	"mazereplay/internal/ui/input/modes"
	inputtypes "mazereplay/internal/ui/input/types"
	"mazereplay/internal/ui/views"
)

// statusTimeout is how long a notice stays in the status line
const statusTimeout = 3 * time.Second

// Model is the playback controller. It owns the panes through the store and
// drives every player from the update loop.
type Model struct {
	bus   eventbus.EventBus
	cfg   *config.Config
	store logic.PaneStore

	width  int
	height int
	help   help.Model
	keys   modes.KeyMap

	renderer     *views.Renderer
	inputHandler *input.Handler

	mazePath string // seeded into panes discovered while running

	focused      int
	playing      bool
	tickID       int
	speedMs      int
	batch        int
	editCursor   domain.Cell
	showHelp     bool
	showLegend   bool
	showLivePath bool

	statusMessage string
	statusIsError bool
	statusSeq     int

	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over the panes in store
func NewModel(bus eventbus.EventBus, cfg *config.Config, store logic.PaneStore) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	keys := modes.DefaultKeyMap()
	m := &Model{
		bus:          bus,
		cfg:          cfg,
		store:        store,
		help:         help.New(),
		keys:         keys,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(keys),
		speedMs:      cfg.ClampSpeed(cfg.Playback.SpeedMs),
		batch:        cfg.ClampBatch(cfg.Playback.Batch),
		showLegend:   cfg.UI.ShowLegend,
		showLivePath: cfg.UI.ShowLivePath,
	}
	logic.SetSpeedAll(store, m.speedMs)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// SetMazePath sets the maze seeded into panes added by discovery
func (m *Model) SetMazePath(path string) {
	m.mazePath = path
}

// Playing reports whether the replay timer is running
func (m *Model) Playing() bool {
	return m.playing
}

// Init starts playback when autoplay is configured
func (m *Model) Init() tea.Cmd {
	if m.cfg.Playback.Autoplay && !logic.AllFinished(m.store) {
		return m.startPlayback()
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{
			Store:     m.store,
			Focused:   m.focused,
			IsPlaying: m.playing,
		}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		// Handle non-keyboard messages
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	mode := m.inputHandler.CurrentMode()
	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Playing:       m.playing,
		SpeedMs:       m.speedMs,
		Batch:         m.batch,
		Mode:          mode.String(),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		ShowLegend:    m.showLegend,
		ShowLivePath:  m.showLivePath,
		ShowHelp:      m.showHelp,
		CellWidth:     m.cfg.UI.CellWidth,
		HelpModel:     m.help,
		Keys:          m.keys,
	}
	if mode == inputtypes.ModeEditWalls {
		state.Keys = editKeyMap{m.keys}
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.Prompt = m.inputHandler.Prompt()
		state.TextInput = ti.View()
	}

	for i, p := range m.store.GetAllPanes() {
		pv := views.PaneView{
			Label:    p.Label,
			Source:   p.Player.Source(),
			Snapshot: p.Player.CurrentSnapshot(),
			Cursor:   p.Player.Cursor(),
			Total:    p.Player.Len(),
			Finished: p.Player.Finished(),
			Found:    p.Player.Found(),
			Focused:  i == m.focused && m.store.Len() > 1,
		}
		if i == m.focused && mode == inputtypes.ModeEditWalls {
			c := m.editCursor
			pv.EditCursor = &c
		}
		state.Panes = append(state.Panes, pv)
	}

	return m.renderer.Render(state)
}

// focusedPane returns the pane pane-local actions apply to
func (m *Model) focusedPane() *replay.Pane {
	panes := m.store.GetAllPanes()
	if len(panes) == 0 {
		return nil
	}
	if m.focused >= len(panes) {
		m.focused = len(panes) - 1
	}
	return panes[m.focused]
}

func (m *Model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(time.Duration(m.speedMs)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg{id: id, at: t}
	})
}

func (m *Model) startPlayback() tea.Cmd {
	m.playing = true
	m.tickID++
	return m.tick()
}

func (m *Model) stopPlayback() {
	m.playing = false
	m.tickID++
}

// stepPanes advances every unfinished pane by one batch and reports the
// progress on the bus
func (m *Model) stepPanes() {
	before := make(map[string]int, m.store.Len())
	logic.ForEach(m.store, func(p *replay.Pane) {
		before[p.Label] = p.Player.Cursor()
	})

	_, finished := logic.StepAll(m.store, m.batch)
	if m.bus == nil {
		return
	}

	logic.ForEach(m.store, func(p *replay.Pane) {
		if n := p.Player.Cursor() - before[p.Label]; n > 0 {
			m.bus.Publish(eventbus.PaneSteppedEvent{Pane: p.Label, Applied: n, Cursor: p.Player.Cursor()})
		}
	})
	for _, p := range finished {
		m.bus.Publish(eventbus.PaneFinishedEvent{
			Pane:   p.Label,
			Found:  p.Player.Found(),
			Path:   len(p.Player.State().BestPath()),
			Cursor: p.Player.Cursor(),
		})
	}
}

func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusMessage = msg
	m.statusIsError = isError
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.TogglePlayAction:
		if m.playing {
			m.stopPlayback()
			return nil
		}
		return m.startPlayback()

	case inputtypes.StepAction:
		if m.playing {
			m.stopPlayback()
		}
		m.stepPanes()

	case inputtypes.ResetAction:
		m.stopPlayback()
		logic.ResetAll(m.store)
		if m.bus != nil {
			m.bus.Publish(eventbus.PanesResetEvent{Panes: m.store.Len()})
		}

	case inputtypes.SpeedAction:
		m.speedMs = m.cfg.ClampSpeed(m.speedMs + a.DeltaMs)
		logic.SetSpeedAll(m.store, m.speedMs)
		return m.setStatus(fmt.Sprintf("Speed %d ms", m.speedMs), false)

	case inputtypes.BatchAction:
		m.batch = m.cfg.ClampBatch(m.batch + a.Delta)
		return m.setStatus(fmt.Sprintf("Batch %d", m.batch), false)

	case inputtypes.FocusAction:
		if n := m.store.Len(); n > 0 {
			m.focused = ((m.focused+a.Delta)%n + n) % n
		}

	case inputtypes.OpenListingAction:
		pane := m.focusedPane()
		if pane == nil {
			return nil
		}
		if m.program == nil {
			return m.setStatus("Event listing is not available", true)
		}
		return m.openListing(pane)

	case inputtypes.ChangeModeAction:
		if a.Mode == inputtypes.ModeEditWalls {
			if pane := m.focusedPane(); pane != nil {
				m.editCursor = clampCell(pane.Player.State(), pane.Player.State().Start())
			}
		}

	case inputtypes.MoveCursorAction:
		if pane := m.focusedPane(); pane != nil {
			next := domain.Cell{Row: m.editCursor.Row + a.DRow, Col: m.editCursor.Col + a.DCol}
			m.editCursor = clampCell(pane.Player.State(), next)
		}

	case inputtypes.ToggleWallAction:
		if pane := m.focusedPane(); pane != nil {
			pane.Player.ToggleWall(m.editCursor)
		}

	case inputtypes.ClearWallsAction:
		if pane := m.focusedPane(); pane != nil {
			pane.Player.ClearWalls()
		}

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeOpenTrace {
			return m.openTrace(a.Text)
		}

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case inputtypes.ToggleLegendAction:
		m.showLegend = !m.showLegend

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// openTrace loads a trace file into the focused pane. A failed load leaves
// the pane as it was.
func (m *Model) openTrace(path string) tea.Cmd {
	path = strings.TrimSpace(path)
	pane := m.focusedPane()
	if path == "" || pane == nil {
		return nil
	}

	m.stopPlayback()
	if err := pane.LoadTraceFile(path); err != nil {
		log.Printf("Failed to load %s into %s: %v", path, pane.Label, err)
		if m.bus != nil {
			m.bus.Publish(eventbus.TraceLoadFailedEvent{Pane: pane.Label, Source: path, Err: err})
		}
		return m.setStatus(fmt.Sprintf("Load failed: %v", err), true)
	}

	if m.bus != nil {
		m.bus.Publish(eventbus.TraceLoadedEvent{Pane: pane.Label, Source: path, Events: pane.Player.Len()})
	}
	return m.setStatus(fmt.Sprintf("%s: loaded %s", pane.Label, path), false)
}

// handleNonKeyboardMsg processes messages that don't come from the keyboard
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if msg.id != m.tickID || !m.playing || m.inPagerMode {
			return m, nil
		}
		m.stepPanes()
		if logic.AllFinished(m.store) {
			m.stopPlayback()
			return m, nil
		}
		return m, m.tick()

	case listingPagerMsg:
		if msg.err != nil {
			log.Printf("Listing pager failed for %s: %v", msg.pane, msg.err)
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		if m.playing {
			m.tickID++
			return m, m.tick()
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil
	}
	return m, nil
}

// handleEvent applies bus events forwarded to the UI
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.TraceChangedEvent:
		panes := m.store.PanesForTrace(e.Path)
		if len(panes) == 0 {
			return nil
		}
		for _, pane := range panes {
			if err := pane.Load(); err != nil {
				log.Printf("Reload of %s failed: %v", pane.Label, err)
				if m.bus != nil {
					m.bus.Publish(eventbus.TraceLoadFailedEvent{Pane: pane.Label, Source: e.Path, Err: err})
				}
				return m.setStatus(fmt.Sprintf("Reload failed: %v", err), true)
			}
		}
		return m.setStatus(fmt.Sprintf("Reloaded %s", e.Path), false)

	case eventbus.TracesDiscoveredEvent:
		return m.addDiscovered(e.Specs)

	case eventbus.ErrorEvent:
		return m.setStatus(fmt.Sprintf("%s: %v", e.Message, e.Err), true)
	}
	return nil
}

// addDiscovered adds a pane per discovered trace. The empty placeholder pane
// shown before any trace was loaded makes room for them.
func (m *Model) addDiscovered(specs []domain.PaneSpec) tea.Cmd {
	if len(specs) == 0 {
		return m.setStatus("No traces found", false)
	}
	for _, p := range m.store.GetAllPanes() {
		if p.TracePath == "" && p.Player.Len() == 0 {
			m.store.RemovePane(p.Label)
		}
	}

	added := 0
	var failed error
	for _, spec := range specs {
		if m.store.GetPane(spec.Label) != nil {
			continue
		}
		pane := replay.NewPane(spec.Label, spec.TracePath, m.mazePath)
		pane.Player.SetSpeed(m.speedMs)
		if err := pane.Load(); err != nil {
			log.Printf("Skipping %s: %v", spec.TracePath, err)
			failed = err
			continue
		}
		m.store.AddPane(pane)
		added++
	}
	m.focused = 0

	if failed != nil {
		return m.setStatus(fmt.Sprintf("Added %d panes; %v", added, failed), true)
	}
	return m.setStatus(fmt.Sprintf("Added %d panes", added), false)
}

// clampCell keeps a cell inside the grid
func clampCell(s *domain.SearchState, c domain.Cell) domain.Cell {
	c.Row = min(max(c.Row, 0), s.Rows()-1)
	c.Col = min(max(c.Col, 0), s.Cols()-1)
	return c
}

// editKeyMap shows the wall editing bindings in the help bar
type editKeyMap struct {
	keys modes.KeyMap
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return k.keys.EditHelp()
}

func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.keys.EditHelp()}
}
