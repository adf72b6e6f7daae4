package domain

import (
	"slices"
	"testing"
)

func rowNamesOf(t *Tree, rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, t.Node(r.Node).Name)
	}
	return out
}

func expandAll(t *Tree) {
	for i := 0; i < t.Len(); i++ {
		t.Expand(i)
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		query string
		name  string
		want  bool
	}{
		{"glb", "gitlab", true},
		{"api", "API", true},
		{"API", "api-gateway", true},
		{"zzz", "gitlab", false},
		{"ba", "ab", false},
		{"", "anything", true},
		{"  glb  ", "gitlab", true},
		{"gitlab-tree", "gitlab", false},
	}

	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.name, func(t *testing.T) {
			if got := FuzzyMatch(tt.query, tt.name); got != tt.want {
				t.Errorf("FuzzyMatch(%q, %q) = %v, want %v", tt.query, tt.name, got, tt.want)
			}
		})
	}
}

func TestVisible(t *testing.T) {
	tree := SampleTree()

	t.Run("roots expanded by default", func(t *testing.T) {
		got := rowNamesOf(tree, tree.Visible())
		want := []string{
			"dev-platform", "backend", "frontend", "platform-tools",
			"data", "ingest", "models", "data-tools",
			"security", "sec-tools", "audits",
		}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("depth follows ancestry", func(t *testing.T) {
		rows := tree.Visible()
		if rows[0].Depth != 0 || rows[1].Depth != 1 {
			t.Errorf("unexpected depths %d %d", rows[0].Depth, rows[1].Depth)
		}
	})

	t.Run("collapsed node hides its subtree", func(t *testing.T) {
		tree := SampleTree()
		tree.Collapse(tree.Roots()[0])

		got := rowNamesOf(tree, tree.Visible())
		if got[0] != "dev-platform" || got[1] != "data" {
			t.Errorf("expected dev-platform subtree hidden, got %v", got)
		}
	})

	t.Run("empty tree projects nothing", func(t *testing.T) {
		tree := BuildTree(nil, nil, nil)
		if rows := tree.Visible(); len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})
}

func TestProject(t *testing.T) {
	t.Run("nil query is identity", func(t *testing.T) {
		tree := SampleTree()
		if !slices.Equal(tree.Project(nil), tree.Visible()) {
			t.Error("expected nil query to return the visible rows")
		}
	})

	t.Run("blank query is identity", func(t *testing.T) {
		tree := SampleTree()
		q := "   "
		if got := tree.Project(&q); len(got) != len(tree.Visible()) {
			t.Errorf("expected all rows, got %d", len(got))
		}
	})

	t.Run("filtered view is flat and ordered", func(t *testing.T) {
		tree := SampleTree()
		expandAll(tree)
		q := "in"

		got := rowNamesOf(tree, tree.Project(&q))
		want := []string{"design-system", "ingest", "ingest", "pipeline"}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("leaf matches without ancestor", func(t *testing.T) {
		tree := SampleTree()
		expandAll(tree)
		q := "api"

		rows := tree.Project(&q)
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].Depth != 2 {
			t.Errorf("expected original depth 2, got %d", rows[0].Depth)
		}
	})

	t.Run("filter respects expansion", func(t *testing.T) {
		tree := SampleTree()
		q := "api"
		if rows := tree.Project(&q); len(rows) != 0 {
			t.Errorf("expected hidden leaf to stay hidden, got %d rows", len(rows))
		}
	})

	t.Run("no match yields empty", func(t *testing.T) {
		tree := SampleTree()
		q := "zzz"
		if rows := tree.Project(&q); len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})
}
