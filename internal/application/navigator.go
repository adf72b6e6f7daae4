package application

import (
	"gitlabtree/internal/domain"
)

// KeyCode is a logical key, independent of the terminal library
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyOther
)

// Key is one input event. Rune is set only for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey builds a character key
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

func (k Key) is(r rune) bool {
	return k.Code == KeyRune && k.Rune == r
}

// Action is what the interactive loop must do after a key
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionReload
	ActionYank
	ActionOpen
)

// Navigator owns the tree and all cursor state for one loaded catalog
type Navigator struct {
	tree      *domain.Tree
	selected  int
	pendingG  bool
	searching bool
	query     *string
}

// NewNavigator starts with the first row selected and no filter
func NewNavigator(tree *domain.Tree) *Navigator {
	return &Navigator{tree: tree}
}

// Tree returns the underlying tree
func (n *Navigator) Tree() *domain.Tree {
	return n.tree
}

// Rows returns the current filtered projection
func (n *Navigator) Rows() []domain.Row {
	return n.tree.Project(n.query)
}

// Selected returns the selected row index. It is 0 when nothing is visible.
func (n *Navigator) Selected() int {
	return n.selected
}

// SelectedNode returns the arena index of the selected node
func (n *Navigator) SelectedNode() (int, bool) {
	return n.nodeAt(n.Rows())
}

// Searching reports whether a query is being edited
func (n *Navigator) Searching() bool {
	return n.searching
}

// Query returns the search query and whether one is set
func (n *Navigator) Query() (string, bool) {
	if n.query == nil {
		return "", false
	}
	return *n.query, true
}

// ChordPending reports whether the first key of the go-to-top chord was seen
func (n *Navigator) ChordPending() bool {
	return n.pendingG
}

// HandleKey applies one key and reports any action the caller must run
func (n *Navigator) HandleKey(k Key) Action {
	if !k.is('g') || n.searching {
		n.pendingG = false
	}

	if n.searching {
		n.handleSearchKey(k)
		return ActionNone
	}

	switch {
	case k.is('q'):
		return ActionQuit
	case k.is('r'):
		return ActionReload
	case k.is('y'):
		return ActionYank
	case k.is('o'):
		return ActionOpen
	case k.Code == KeyUp || k.is('k'):
		n.MoveUp()
	case k.Code == KeyDown || k.is('j'):
		n.MoveDown()
	case k.Code == KeyLeft || k.is('h'):
		n.CollapseOrParent()
	case k.Code == KeyRight || k.is('l'):
		n.ExpandOrChild()
	case k.is('g'):
		if n.pendingG {
			n.pendingG = false
			n.Top()
		} else {
			n.pendingG = true
		}
	case k.is('G'):
		n.Bottom()
	case k.is('/'):
		n.StartSearch()
	case k.Code == KeyEsc:
		n.ClearSearch()
	}
	return ActionNone
}

func (n *Navigator) handleSearchKey(k Key) {
	switch k.Code {
	case KeyEsc:
		n.ClearSearch()
	case KeyEnter:
		n.ApplySearch()
	case KeyBackspace:
		n.PopSearch()
	case KeyRune:
		n.PushSearch(k.Rune)
	}
}

// MoveUp selects the previous row, stopping at the first
func (n *Navigator) MoveUp() {
	if n.selected > 0 {
		n.selected--
	}
}

// MoveDown selects the next row, stopping at the last
func (n *Navigator) MoveDown() {
	if n.selected+1 < len(n.Rows()) {
		n.selected++
	}
}

// Top selects the first row
func (n *Navigator) Top() {
	n.selected = 0
}

// Bottom selects the last row
func (n *Navigator) Bottom() {
	if rows := n.Rows(); len(rows) > 0 {
		n.selected = len(rows) - 1
	}
}

// ExpandOrChild expands a collapsed group in place, or moves into the first
// child of an already expanded one. Leaves are left alone.
func (n *Navigator) ExpandOrChild() {
	rows := n.Rows()
	node, ok := n.nodeAt(rows)
	if !ok || !n.tree.HasChildren(node) {
		return
	}
	if !n.tree.Expanded(node) {
		n.tree.Expand(node)
		n.reselect(node)
		return
	}
	n.selectIn(rows, n.tree.Children(node)[0])
}

// CollapseOrParent collapses an expanded node in place, or moves to the
// parent of a collapsed one
func (n *Navigator) CollapseOrParent() {
	rows := n.Rows()
	node, ok := n.nodeAt(rows)
	if !ok {
		return
	}
	if n.tree.Expanded(node) {
		n.tree.Collapse(node)
		n.reselect(node)
		return
	}
	if parent, ok := n.tree.Parent(node); ok {
		n.selectIn(rows, parent)
	}
}

// StartSearch enters editing mode with an empty query
func (n *Navigator) StartSearch() {
	prev := n.current()
	empty := ""
	n.searching = true
	n.query = &empty
	n.reselect(prev)
}

// PushSearch appends a character to the query
func (n *Navigator) PushSearch(r rune) {
	prev := n.current()
	q := string(r)
	if n.query != nil {
		q = *n.query + q
	}
	n.query = &q
	n.reselect(prev)
}

// PopSearch removes the last character of the query
func (n *Navigator) PopSearch() {
	if n.query == nil {
		return
	}
	prev := n.current()
	runes := []rune(*n.query)
	if len(runes) > 0 {
		runes = runes[:len(runes)-1]
	}
	q := string(runes)
	n.query = &q
	if q == "" && !n.searching {
		n.query = nil
	}
	n.reselect(prev)
}

// ApplySearch leaves editing mode and keeps the query. An empty query
// clears the filter.
func (n *Navigator) ApplySearch() {
	n.searching = false
	if n.query != nil && *n.query == "" {
		prev := n.current()
		n.query = nil
		n.reselect(prev)
	}
}

// ClearSearch drops the query and leaves editing mode
func (n *Navigator) ClearSearch() {
	prev := n.current()
	n.searching = false
	n.query = nil
	n.reselect(prev)
}

// Details describes the selected node for the details pane
func (n *Navigator) Details() []string {
	idx, ok := n.SelectedNode()
	if !ok {
		return []string{"No selection"}
	}
	return DetailLines(n.tree.Node(idx))
}

// DetailLines formats the detail fields of a node
func DetailLines(node domain.Node) []string {
	lines := []string{
		"Name: " + node.Name,
		"Kind: " + node.Kind.Label(),
		"Path: " + node.Path,
		"Visibility: " + node.Visibility,
		"URL: " + node.URL,
	}
	if node.LastActivity != "" {
		lines = append(lines, "Last activity: "+node.LastActivity)
	}
	return lines
}

// SelectedURL returns the URL of the selected node
func (n *Navigator) SelectedURL() (string, error) {
	idx, ok := n.SelectedNode()
	if !ok {
		return "", ErrNoSelection
	}
	return n.tree.Node(idx).URL, nil
}

func (n *Navigator) nodeAt(rows []domain.Row) (int, bool) {
	if n.selected < 0 || n.selected >= len(rows) {
		return 0, false
	}
	return rows[n.selected].Node, true
}

// current returns the selected node, or -1 when nothing is visible
func (n *Navigator) current() int {
	if node, ok := n.SelectedNode(); ok {
		return node
	}
	return -1
}

// selectIn moves the cursor to node if it is among rows
func (n *Navigator) selectIn(rows []domain.Row, node int) {
	for i, r := range rows {
		if r.Node == node {
			n.selected = i
			return
		}
	}
}

// reselect re-derives the cursor after the projection changed: follow node
// if it is still visible, otherwise clamp into range
func (n *Navigator) reselect(node int) {
	rows := n.Rows()
	if len(rows) == 0 {
		n.selected = 0
		return
	}
	for i, r := range rows {
		if r.Node == node {
			n.selected = i
			return
		}
	}
	if n.selected >= len(rows) {
		n.selected = len(rows) - 1
	}
}
