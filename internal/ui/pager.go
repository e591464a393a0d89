package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"mazereplay/internal/replay"
	"mazereplay/internal/trace"
)

// listingContent formats a pane's event stream one event per line. The
// event the next step will apply is marked with '>'.
func listingContent(pane *replay.Pane) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	markStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220"))

	p := pane.Player
	events := p.Events()

	var b strings.Builder
	b.WriteString(titleStyle.Render(pane.Label))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s  %d/%d", p.Source(), p.Cursor(), len(events))))
	b.WriteString("\n\n")

	for i, ev := range events {
		line := fmt.Sprintf("%6d  %s", i+1, trace.Describe(ev))
		if i == p.Cursor() {
			b.WriteString(markStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if p.Cursor() >= len(events) {
		b.WriteString(dimStyle.Render("  (end of stream)"))
		b.WriteString("\n")
	}
	return b.String()
}

// showInPager hands the terminal to ov until the user quits it
func showInPager(program *tea.Program, content string) error {
	if program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// openListing returns a command that shows the pane's events in the pager
func (m *Model) openListing(pane *replay.Pane) tea.Cmd {
	content := listingContent(pane)
	label := pane.Label
	program := m.program
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := showInPager(program, content)
		program.Send(resumeRenderingMsg{})
		return listingPagerMsg{pane: label, err: err}
	}
}
