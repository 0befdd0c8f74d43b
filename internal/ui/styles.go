package ui

import "github.com/charmbracelet/lipgloss"

// Brand colors.
var (
	Primary = lipgloss.Color("#468748")
	Success = lipgloss.Color("#28A745")
	Danger  = lipgloss.Color("#E53935")
	Muted   = lipgloss.Color("#8A8A8A")
	Border  = lipgloss.Color("#CCCCCC")
)

// Styles groups the lipgloss styles used by the screen.
type Styles struct {
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Banner  lipgloss.Style
	Notice  lipgloss.Style
	Label   lipgloss.Style
	Field   lipgloss.Style
	Focused lipgloss.Style
	Muted   lipgloss.Style
	Editing lipgloss.Style
}

// DefaultStyles returns the default screen styles.
func DefaultStyles() Styles {
	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Primary).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Primary).
			Padding(0, 1),
		Banner:  lipgloss.NewStyle().Bold(true).Foreground(Success),
		Notice:  lipgloss.NewStyle().Bold(true).Foreground(Danger),
		Label:   lipgloss.NewStyle().Bold(true),
		Field:   field,
		Focused: field.BorderForeground(Primary),
		Muted:   lipgloss.NewStyle().Foreground(Muted),
		Editing: lipgloss.NewStyle().Italic(true).Foreground(Primary),
	}
}
