package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red

	// Panes
	Pane = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Muted)

	PaneTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	// Tree rows
	RowGroup = lipgloss.NewStyle().
			Foreground(Secondary)

	RowProject = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)

	RowMarker = lipgloss.NewStyle().Foreground(Muted)

	// Details
	DetailLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Footer
	Footer = lipgloss.NewStyle().
		Foreground(Muted)

	FooterStatusErr = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Toast
	Toast = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Warning).
		Padding(0, 1)

	ToastTitle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSection = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Loading
	Spinner = lipgloss.NewStyle().Foreground(Primary)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)
