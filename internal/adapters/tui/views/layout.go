package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlabtree/internal/adapters/tui/styles"
	"gitlabtree/internal/application"
)

const (
	footerHeight = 2
	minWidth     = 20
	minHeight    = 6
)

// RenderFrame lays out a session frame: tree pane (60%) and details pane
// (40%) above a two-line footer, with the toast pinned top right
func RenderFrame(f application.Frame, width, height int) string {
	if width < minWidth || height < minHeight {
		return Truncate("terminal too small", width)
	}

	var top string
	mainHeight := height - footerHeight
	if f.Toast != nil {
		top = RenderToast(*f.Toast, width)
		mainHeight -= lipgloss.Height(top)
	}

	treeWidth := width * 60 / 100
	detailsWidth := width - treeWidth

	tree := RenderTree(f.Rows, treeWidth, mainHeight)
	details := RenderDetails(f.Details, detailsWidth, mainHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, details)

	parts := []string{}
	if top != "" {
		parts = append(parts, top)
	}
	parts = append(parts, body, RenderFooter(f.Footer, width, IsLoadError(f.Status)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderTree draws the visible rows, scrolled so the selected row is shown
func RenderTree(rows []application.RowView, width, height int) string {
	innerW := width - 2
	visible := height - 3 // borders plus title line
	if visible < 1 {
		visible = 1
	}

	selected := 0
	for i, r := range rows {
		if r.Selected {
			selected = i
			break
		}
	}
	start := ScrollOffset(selected, len(rows), visible)
	end := min(start+visible, len(rows))

	body := make([]string, 0, end-start)
	for _, r := range rows[start:end] {
		body = append(body, renderRow(r, innerW))
	}
	return RenderPane("GitLab Tree", body, width, height)
}

func renderRow(r application.RowView, width int) string {
	line := Pad(Truncate(r.Line(), width), width)
	if r.Selected {
		return styles.RowSelected.Render(line)
	}
	style := styles.RowProject
	if r.Kind == "group" {
		style = styles.RowGroup
	}
	indent, marker, rest, ok := SplitMarker(line, r)
	if !ok {
		return style.Render(line)
	}
	return indent + styles.RowMarker.Render(marker) + style.Render(rest)
}

// SplitMarker cuts a rendered row into its indent, expansion marker and the
// remainder. ok is false when truncation removed part of the marker.
func SplitMarker(line string, r application.RowView) (indent, marker, rest string, ok bool) {
	indent = strings.Repeat("  ", r.Depth)
	if !strings.HasPrefix(line, indent+r.Marker) {
		return "", "", line, false
	}
	return indent, r.Marker, line[len(indent)+len(r.Marker):], true
}

// ScrollOffset returns the first row to draw so that selected stays inside
// a window of size rows
func ScrollOffset(selected, total, size int) int {
	if total <= size || selected < size/2 {
		return 0
	}
	offset := selected - size/2
	if offset > total-size {
		offset = total - size
	}
	return offset
}

// RenderDetails draws the detail lines of the selected node
func RenderDetails(lines []string, width, height int) string {
	innerW := width - 2
	body := make([]string, 0, len(lines))
	for _, l := range lines {
		text := Pad(Truncate(l, innerW), innerW)
		if label, _, ok := strings.Cut(l, ": "); ok && strings.HasPrefix(text, label+":") {
			text = styles.DetailLabel.Render(label+":") + text[len(label)+1:]
		}
		body = append(body, text)
	}
	return RenderPane("Details", body, width, height)
}

// LoadErrorPrefix starts the status shown when a load falls back to the
// sample tree
const LoadErrorPrefix = "load error: "

// IsLoadError reports whether status describes a failed load
func IsLoadError(status string) bool {
	return strings.HasPrefix(status, LoadErrorPrefix)
}

// RenderFooter wraps the footer text over at most two lines. Failed loads
// are drawn in the error style.
func RenderFooter(text string, width int, failed bool) string {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := splitLines(wrapped)
	if len(lines) > footerHeight {
		rest := strings.Join(lines[footerHeight-1:], " ")
		lines = append(lines[:footerHeight-1], Truncate(rest, width))
	}
	for len(lines) < footerHeight {
		lines = append(lines, "")
	}
	style := styles.Footer
	if failed {
		style = styles.FooterStatusErr
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderToast draws the notice box aligned to the right edge
func RenderToast(t application.ToastView, width int) string {
	box := styles.Toast.Render(styles.ToastTitle.Render("Notice") + " " + t.Message)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, box)
}

// RenderLoading draws the loading pane with the spinner frame
func RenderLoading(spinner string, width, height int) string {
	if width < minWidth || height < minHeight {
		return spinner + " loading GitLab data..."
	}
	return RenderPane("GitLab Tree", []string{spinner + " loading GitLab data..."}, width, height)
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
