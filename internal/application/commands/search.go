package commands

import (
	"context"
	"sort"

	"github.com/sahilm/fuzzy"

	"gitlabtree/internal/domain"
)

// SearchResult is a matching node with its relevance score
type SearchResult struct {
	Entry
	Score int `json:"score" yaml:"score"`
}

// SearchCommand ranks every node of the forest against a fuzzy query,
// ignoring expansion state
type SearchCommand struct {
	tree  *domain.Tree
	Query string
	Limit int // 0 means unlimited
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(tree *domain.Tree, query string, limit int) *SearchCommand {
	return &SearchCommand{
		tree:  tree,
		Query: query,
		Limit: limit,
	}
}

// Execute runs the search. Name and path are both matched; the better score
// wins. Ties keep tree order.
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if c.Query == "" {
		return nil, nil
	}

	var nodes []domain.Node
	c.tree.Walk(func(node, depth int) bool {
		nodes = append(nodes, c.tree.Node(node))
		return true
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	best := make(map[int]int)
	for _, src := range []fuzzy.Source{nodeNames(nodes), nodePaths(nodes)} {
		for _, m := range fuzzy.FindFrom(c.Query, src) {
			if score, ok := best[m.Index]; !ok || m.Score > score {
				best[m.Index] = m.Score
			}
		}
	}

	order := make([]int, 0, len(best))
	for i := range best {
		order = append(order, i)
	}
	sort.Slice(order, func(a, b int) bool {
		if best[order[a]] != best[order[b]] {
			return best[order[a]] > best[order[b]]
		}
		return order[a] < order[b]
	})
	if c.Limit > 0 && len(order) > c.Limit {
		order = order[:c.Limit]
	}

	results := make([]SearchResult, 0, len(order))
	for _, i := range order {
		results = append(results, SearchResult{Entry: newEntry(nodes[i]), Score: best[i]})
	}
	return results, nil
}

type nodeNames []domain.Node

func (n nodeNames) String(i int) string { return n[i].Name }
func (n nodeNames) Len() int            { return len(n) }

type nodePaths []domain.Node

func (n nodePaths) String(i int) string { return n[i].Path }
func (n nodePaths) Len() int            { return len(n) }
