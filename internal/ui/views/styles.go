package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	Prompt        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Pane          lipgloss.Style
	PaneFocused   lipgloss.Style
	PaneLabel     lipgloss.Style
	Message       lipgloss.Style

	// grid cells
	Empty    lipgloss.Style
	Wall     lipgloss.Style
	Start    lipgloss.Style
	End      lipgloss.Style
	Current  lipgloss.Style
	BestPath lipgloss.Style
	LivePath lipgloss.Style
	Frontier lipgloss.Style
	Visited  lipgloss.Style
	Cursor   lipgloss.Style
}

func cellStyle(bg string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(bg))
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).MarginTop(1), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),               // green
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),              // yellow
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(0, 1),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			MarginRight(1),
		PaneFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1).
			MarginRight(1),
		PaneLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		Message:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),

		Empty:    cellStyle("255"),
		Wall:     cellStyle("16"),
		Start:    cellStyle("#32CD32"), // lime green
		End:      cellStyle("#DC143C"), // crimson
		Current:  cellStyle("#FFD700"), // gold
		BestPath: cellStyle("208"),     // orange
		LivePath: cellStyle("170"),     // magenta
		Frontier: cellStyle("#4682B4"), // steel blue
		Visited:  cellStyle("250"),     // gray
		Cursor:   lipgloss.NewStyle().Reverse(true).Bold(true),
	}
}
