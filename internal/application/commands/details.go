package commands

import (
	"context"
	"fmt"

	"gitlabtree/internal/application"
	"gitlabtree/internal/domain"
)

// DetailsCommand looks a node up by its full path
type DetailsCommand struct {
	tree *domain.Tree
	Path string
}

// NewDetailsCommand creates a new DetailsCommand
func NewDetailsCommand(tree *domain.Tree, path string) *DetailsCommand {
	return &DetailsCommand{tree: tree, Path: path}
}

// Execute returns the detail lines of the first node whose path matches
func (c *DetailsCommand) Execute(ctx context.Context) ([]string, error) {
	found := -1
	c.tree.Walk(func(node, depth int) bool {
		if found >= 0 {
			return false
		}
		if c.tree.Node(node).Path == c.Path {
			found = node
			return false
		}
		return true
	})
	if found < 0 {
		return nil, fmt.Errorf("%w: %s", application.ErrNotFound, c.Path)
	}
	return application.DetailLines(c.tree.Node(found)), nil
}
