package tui

import "github.com/charmbracelet/lipgloss"

// Style controls how frames are drawn in the terminal.
type Style struct {
	// Panel frames the simulated screen.
	Panel lipgloss.Style
	// Flash replaces Panel for a frame committed as a full refresh.
	Flash lipgloss.Style

	Text   lipgloss.Style
	Title  lipgloss.Style
	Status lipgloss.Style
	Cursor lipgloss.Style
	// Info is the line under the panel.
	Info lipgloss.Style
}

func DefaultStyle() Style {
	return StyleFor(lipgloss.DefaultRenderer())
}

// StyleFor builds the default style on r, so tests can pin the color profile.
func StyleFor(r *lipgloss.Renderer) Style {
	panel := r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("245"))
	return Style{
		Panel:  panel,
		Flash:  panel.BorderForeground(lipgloss.Color("255")).Reverse(true),
		Text:   r.NewStyle(),
		Title:  r.NewStyle().Bold(true),
		Status: r.NewStyle().Foreground(lipgloss.Color("244")),
		Cursor: r.NewStyle().Reverse(true),
		Info:   r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
