package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gitlabtree/internal/adapters/tui/styles"
)

const ellipsis = "…"

// Truncate shortens s to at most width terminal cells
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// Pad fills s with spaces up to width terminal cells
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// RenderPane draws a bordered box of the given outer size with a title on
// its first inner line. Body lines must already fit the inner width.
func RenderPane(title string, body []string, width, height int) string {
	innerW, innerH := width-2, height-2
	if innerW < 1 || innerH < 1 {
		return ""
	}

	lines := make([]string, 0, innerH)
	lines = append(lines, styles.PaneTitle.Render(Pad(Truncate(title, innerW), innerW)))
	for _, l := range body {
		if len(lines) == innerH {
			break
		}
		lines = append(lines, l)
	}
	for len(lines) < innerH {
		lines = append(lines, strings.Repeat(" ", innerW))
	}

	return styles.Pane.
		Width(innerW).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

// RenderMuted renders muted/secondary text
func RenderMuted(text string) string {
	return styles.MutedText.Render(text)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Section adds a section heading
func (v *ViewBuilder) Section(title string) *ViewBuilder {
	v.b.WriteString(styles.HelpSection.Render(title))
	v.b.WriteString("\n")
	return v
}

// KeyLine adds an indented key/description pair
func (v *ViewBuilder) KeyLine(key, desc string) *ViewBuilder {
	v.b.WriteString("  ")
	v.b.WriteString(styles.HelpKey.Render(Pad(key, 16)))
	v.b.WriteString(styles.HelpDesc.Render(desc))
	v.b.WriteString("\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// String returns the built text
func (v *ViewBuilder) String() string {
	return v.b.String()
}

// Center places content in the middle of a width x height area
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
