package views

import (
	"github.com/charmbracelet/bubbles/key"
)

// HelpKeyMap defines key bindings for the help overlay
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// RenderHelp draws the key reference centred in a width x height area
func RenderHelp(width, height int) string {
	b := NewViewBuilder().
		Section("Navigation").
		KeyLine("j / k / ↑ / ↓", "Move down/up").
		KeyLine("h / ←", "Collapse / go to parent").
		KeyLine("l / →", "Expand / enter first child").
		KeyLine("gg / G", "Jump to top / bottom").
		BlankLine().
		Section("Search").
		KeyLine("/", "Start a fuzzy search").
		KeyLine("enter", "Apply the query").
		KeyLine("esc", "Clear the query").
		BlankLine().
		Section("Actions").
		KeyLine("y", "Copy URL to clipboard").
		KeyLine("o", "Open URL in browser").
		KeyLine("r", "Reload from GitLab").
		BlankLine().
		Section("General").
		KeyLine("?", "Toggle help").
		KeyLine("q / ctrl+c", "Quit").
		BlankLine().
		Line(RenderMuted("Press esc or ? to close"))

	return Center(RenderPane("Help", splitLines(b.String()), 48, 24), width, height)
}
