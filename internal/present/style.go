package present

import "github.com/charmbracelet/lipgloss"

// Styles colors the plain renderer's segments. A nil *Styles renders
// unstyled text, which is also what tests and piped output use.
type Styles struct {
	Index   lipgloss.Style
	Title   lipgloss.Style
	Due     lipgloss.Style
	Overdue lipgloss.Style
	Flag    lipgloss.Style
	Meta    lipgloss.Style
}

// DefaultStyles is the color scheme used on interactive terminals.
func DefaultStyles() *Styles {
	return &Styles{
		Index:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Title:   lipgloss.NewStyle().Bold(true),
		Due:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Overdue: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
