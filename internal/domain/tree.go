package domain

import "slices"

// NodeKind distinguishes containers from leaves
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindProject
)

// String returns the lowercase kind used in tree rows
func (k NodeKind) String() string {
	if k == KindProject {
		return "project"
	}
	return "group"
}

// Label returns the capitalised kind used in the details pane
func (k NodeKind) Label() string {
	if k == KindProject {
		return "Project"
	}
	return "Group"
}

// Node is one entry in the catalog tree. Children are arena indices in API
// arrival order.
type Node struct {
	Name         string
	Kind         NodeKind
	Children     []int
	Expanded     bool
	URL          string
	Path         string
	Visibility   string
	LastActivity string // empty when the API reported none
}

// Tree owns every node in a flat arena. All cross references are indices
// into that arena.
type Tree struct {
	nodes  []Node
	roots  []int
	parent []int // -1 for roots
}

// Len returns the number of nodes in the arena
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Valid reports whether i addresses a node
func (t *Tree) Valid(i int) bool {
	return i >= 0 && i < len(t.nodes)
}

// Node returns a copy of node i, or the zero Node when i is out of range
func (t *Tree) Node(i int) Node {
	if !t.Valid(i) {
		return Node{}
	}
	n := t.nodes[i]
	n.Children = slices.Clone(n.Children)
	return n
}

// Roots returns the root indices in root order
func (t *Tree) Roots() []int {
	return slices.Clone(t.roots)
}

// Children returns the child indices of node i
func (t *Tree) Children(i int) []int {
	if !t.Valid(i) {
		return nil
	}
	return slices.Clone(t.nodes[i].Children)
}

// HasChildren reports whether node i has at least one child
func (t *Tree) HasChildren(i int) bool {
	return t.Valid(i) && len(t.nodes[i].Children) > 0
}

// Parent returns the parent of node i. Roots have none.
func (t *Tree) Parent(i int) (int, bool) {
	if !t.Valid(i) || t.parent[i] < 0 {
		return 0, false
	}
	return t.parent[i], true
}

// Expanded reports the expansion flag of node i
func (t *Tree) Expanded(i int) bool {
	return t.Valid(i) && t.nodes[i].Expanded
}

// Expand sets the expansion flag of node i. Childless nodes stay collapsed.
func (t *Tree) Expand(i int) {
	if t.Valid(i) && len(t.nodes[i].Children) > 0 {
		t.nodes[i].Expanded = true
	}
}

// Collapse clears the expansion flag of node i
func (t *Tree) Collapse(i int) {
	if t.Valid(i) {
		t.nodes[i].Expanded = false
	}
}

// Walk visits every node in pre-order regardless of expansion state.
// Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(node, depth int) bool) {
	var visit func(node, depth int)
	visit = func(node, depth int) {
		if !fn(node, depth) {
			return
		}
		for _, child := range t.nodes[node].Children {
			visit(child, depth+1)
		}
	}
	for _, root := range t.roots {
		visit(root, 0)
	}
}

// Builder assembles a Tree. Callers keep the links acyclic and give every
// child at most one parent.
type Builder struct {
	nodes []Node
	roots []int
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Add registers a node and returns its arena index
func (b *Builder) Add(n Node) int {
	n.Children = nil
	n.Expanded = false
	b.nodes = append(b.nodes, n)
	return len(b.nodes) - 1
}

// Attach appends child to parent's child list
func (b *Builder) Attach(parent, child int) {
	b.nodes[parent].Children = append(b.nodes[parent].Children, child)
}

// AddRoot marks a node as a root, after any previously added roots
func (b *Builder) AddRoot(i int) {
	b.roots = append(b.roots, i)
}

// Finish expands every root that has children and derives the parent map.
// The builder must not be used afterwards.
func (b *Builder) Finish() *Tree {
	for _, root := range b.roots {
		b.nodes[root].Expanded = len(b.nodes[root].Children) > 0
	}
	t := &Tree{
		nodes: b.nodes,
		roots: b.roots,
	}
	t.parent = buildParentMap(t.nodes)
	b.nodes, b.roots = nil, nil
	return t
}

func buildParentMap(nodes []Node) []int {
	parent := make([]int, len(nodes))
	for i := range parent {
		parent[i] = -1
	}
	for idx, node := range nodes {
		for _, child := range node.Children {
			parent[child] = idx
		}
	}
	return parent
}

// BuildTree constructs the forest from raw API records. Groups whose parent
// is unknown, or whose parent link would close a cycle, become roots.
// Projects of unknown groups are skipped. The personal namespace, when
// present, becomes the last root.
func BuildTree(groups []Group, projectsByGroup []GroupProjects, personal *PersonalProjects) *Tree {
	b := NewBuilder()
	groups = uniqueGroups(groups)
	byID := make(map[int64]int, len(groups))

	for _, g := range groups {
		byID[g.ID] = b.Add(Node{
			Name:       g.Name,
			Kind:       KindGroup,
			URL:        g.WebURL,
			Path:       g.FullPath,
			Visibility: g.Visibility,
		})
	}

	// group nodes occupy arena slots 0..len(groups)-1
	linked := make([]int, len(groups))
	for i := range linked {
		linked[i] = -1
	}
	for _, g := range groups {
		idx := byID[g.ID]
		if g.ParentID != nil {
			if parent, ok := byID[*g.ParentID]; ok && !closesCycle(linked, parent, idx) {
				linked[idx] = parent
				b.Attach(parent, idx)
				continue
			}
		}
		b.AddRoot(idx)
	}

	for _, entry := range projectsByGroup {
		parent, ok := byID[entry.GroupID]
		if !ok {
			continue
		}
		for _, p := range entry.Projects {
			b.Attach(parent, b.Add(projectNode(p)))
		}
	}

	if personal != nil {
		root := b.Add(Node{
			Name:       personal.Username,
			Kind:       KindGroup,
			URL:        personal.WebURL,
			Path:       personal.Username,
			Visibility: "private",
		})
		for _, p := range personal.Projects {
			b.Attach(root, b.Add(projectNode(p)))
		}
		b.AddRoot(root)
	}

	return b.Finish()
}

// uniqueGroups drops repeated group IDs, keeping the first occurrence
func uniqueGroups(groups []Group) []Group {
	seen := make(map[int64]bool, len(groups))
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		out = append(out, g)
	}
	return out
}

// closesCycle reports whether linking child under parent would make child
// its own ancestor
func closesCycle(linked []int, parent, child int) bool {
	for p := parent; p >= 0; p = linked[p] {
		if p == child {
			return true
		}
	}
	return false
}

// BuildSnapshotTree builds the forest for a snapshot
func BuildSnapshotTree(s *Snapshot) *Tree {
	return BuildTree(s.Groups, s.ProjectsByGroup, s.Personal)
}

func projectNode(p Project) Node {
	n := Node{
		Name:       p.Name,
		Kind:       KindProject,
		URL:        p.WebURL,
		Path:       p.PathWithNamespace,
		Visibility: p.Visibility,
	}
	if p.LastActivityAt != nil {
		n.LastActivity = *p.LastActivityAt
	}
	return n
}
