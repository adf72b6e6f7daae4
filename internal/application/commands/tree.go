package commands

import (
	"context"

	"gitlabtree/internal/domain"
)

// Entry is a node with its full subtree, independent of expansion state
type Entry struct {
	Name         string  `json:"name" yaml:"name"`
	Kind         string  `json:"kind" yaml:"kind"`
	Path         string  `json:"path" yaml:"path"`
	URL          string  `json:"url" yaml:"url"`
	Visibility   string  `json:"visibility" yaml:"visibility"`
	LastActivity string  `json:"last_activity,omitempty" yaml:"last_activity,omitempty"`
	Children     []Entry `json:"children,omitempty" yaml:"children,omitempty"`
}

func newEntry(n domain.Node) Entry {
	return Entry{
		Name:         n.Name,
		Kind:         n.Kind.String(),
		Path:         n.Path,
		URL:          n.URL,
		Visibility:   n.Visibility,
		LastActivity: n.LastActivity,
	}
}

// TreeCommand exports the whole forest
type TreeCommand struct {
	tree     *domain.Tree
	MaxDepth int // 0 means unlimited
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(tree *domain.Tree, maxDepth int) *TreeCommand {
	return &TreeCommand{tree: tree, MaxDepth: maxDepth}
}

// Execute returns one Entry per root, nested down to MaxDepth
func (c *TreeCommand) Execute(ctx context.Context) ([]Entry, error) {
	roots := c.tree.Roots()
	out := make([]Entry, 0, len(roots))
	for _, r := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, c.entry(r, 0))
	}
	return out, nil
}

func (c *TreeCommand) entry(node, depth int) Entry {
	e := newEntry(c.tree.Node(node))
	if c.MaxDepth > 0 && depth+1 >= c.MaxDepth {
		return e
	}
	for _, child := range c.tree.Children(node) {
		e.Children = append(e.Children, c.entry(child, depth+1))
	}
	return e
}

// Flatten lists entries in pre-order with their depth
func Flatten(entries []Entry, fn func(e Entry, depth int)) {
	var walk func(es []Entry, depth int)
	walk = func(es []Entry, depth int) {
		for _, e := range es {
			fn(e, depth)
			walk(e.Children, depth+1)
		}
	}
	walk(entries, 0)
}
