package domain

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Row is one line of the expansion-respecting projection
type Row struct {
	Node  int
	Depth int
}

// Visible projects the forest in pre-order, descending only into expanded
// nodes. The result is recomputed on every call.
func (t *Tree) Visible() []Row {
	var out []Row
	var walk func(node, depth int)
	walk = func(node, depth int) {
		out = append(out, Row{Node: node, Depth: depth})
		if !t.nodes[node].Expanded {
			return
		}
		for _, child := range t.nodes[node].Children {
			walk(child, depth+1)
		}
	}
	for _, root := range t.roots {
		walk(root, 0)
	}
	return out
}

// Project returns the visible rows narrowed by query. A nil or blank query
// leaves the projection untouched.
func (t *Tree) Project(query *string) []Row {
	rows := t.Visible()
	if query == nil {
		return rows
	}
	return FilterRows(t, rows, *query)
}

// FilterRows keeps the rows whose node name fuzzily matches query, preserving
// projection order. Matching looks at the name only, so a matching leaf
// survives even when none of its ancestors do.
func FilterRows(t *Tree, rows []Row, query string) []Row {
	needle := normalizeQuery(query)
	if needle == "" {
		return rows
	}

	matches := fuzzy.FindFrom(needle, rowNames{tree: t, rows: rows})
	keep := make([]int, 0, len(matches))
	for _, m := range matches {
		keep = append(keep, m.Index)
	}
	sort.Ints(keep)

	out := make([]Row, 0, len(keep))
	for _, i := range keep {
		out = append(out, rows[i])
	}
	return out
}

// FuzzyMatch reports whether every character of query appears in name in
// order, ignoring case
func FuzzyMatch(query, name string) bool {
	needle := normalizeQuery(query)
	if needle == "" {
		return true
	}
	return len(fuzzy.Find(needle, []string{name})) > 0
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// rowNames adapts a row slice to fuzzy.Source
type rowNames struct {
	tree *Tree
	rows []Row
}

func (s rowNames) String(i int) string {
	return s.tree.nodes[s.rows[i].Node].Name
}

func (s rowNames) Len() int {
	return len(s.rows)
}
