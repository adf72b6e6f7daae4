package application

import (
	"slices"
	"testing"

	"gitlabtree/internal/domain"
)

func press(n *Navigator, keys ...Key) Action {
	var last Action
	for _, k := range keys {
		last = n.HandleKey(k)
	}
	return last
}

func typeText(n *Navigator, text string) {
	for _, r := range text {
		n.HandleKey(RuneKey(r))
	}
}

func selectedName(t *testing.T, n *Navigator) string {
	t.Helper()
	idx, ok := n.SelectedNode()
	if !ok {
		t.Fatal("expected a selection")
	}
	return n.Tree().Node(idx).Name
}

func moveTo(t *testing.T, n *Navigator, name string) {
	t.Helper()
	for i, r := range n.Rows() {
		if n.Tree().Node(r.Node).Name == name {
			n.selected = i
			return
		}
	}
	t.Fatalf("row %q not visible", name)
}

func TestNavigatorMovement(t *testing.T) {
	t.Run("up at top is a no-op", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, Key{Code: KeyUp}, RuneKey('k'))
		if n.Selected() != 0 {
			t.Errorf("expected 0, got %d", n.Selected())
		}
	})

	t.Run("down at bottom is a no-op", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		last := len(n.Rows()) - 1
		press(n, RuneKey('G'), Key{Code: KeyDown}, RuneKey('j'))
		if n.Selected() != last {
			t.Errorf("expected %d, got %d", last, n.Selected())
		}
	})

	t.Run("gg jumps to top", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('G'), RuneKey('g'))
		if !n.ChordPending() {
			t.Fatal("expected chord pending after one g")
		}
		press(n, RuneKey('g'))
		if n.Selected() != 0 || n.ChordPending() {
			t.Errorf("expected top with chord cleared, got %d pending=%v", n.Selected(), n.ChordPending())
		}
	})

	t.Run("other key breaks the chord", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		last := len(n.Rows()) - 1
		press(n, RuneKey('G'), RuneKey('g'), RuneKey('x'), RuneKey('g'))
		if n.Selected() != last {
			t.Errorf("expected selection to stay at %d, got %d", last, n.Selected())
		}
		if !n.ChordPending() {
			t.Error("expected the last g to start a new chord")
		}
	})

	t.Run("empty tree tolerates every key", func(t *testing.T) {
		n := NewNavigator(domain.BuildTree(nil, nil, nil))
		press(n, RuneKey('j'), RuneKey('k'), RuneKey('G'), RuneKey('g'), RuneKey('g'),
			RuneKey('l'), RuneKey('h'), Key{Code: KeyEsc})
		if n.Selected() != 0 {
			t.Errorf("expected 0, got %d", n.Selected())
		}
		if got := n.Details(); !slices.Equal(got, []string{"No selection"}) {
			t.Errorf("unexpected details %v", got)
		}
		if _, err := n.SelectedURL(); err != ErrNoSelection {
			t.Errorf("expected ErrNoSelection, got %v", err)
		}
	})
}

func TestNavigatorExpandCollapse(t *testing.T) {
	n := NewNavigator(domain.SampleTree())
	moveTo(t, n, "backend")
	before := len(n.Rows())

	press(n, RuneKey('l'))
	if got := selectedName(t, n); got != "backend" {
		t.Fatalf("expand should keep selection on backend, got %s", got)
	}
	if len(n.Rows()) != before+2 {
		t.Fatalf("expected 2 more rows, got %d", len(n.Rows())-before)
	}

	press(n, Key{Code: KeyRight})
	if got := selectedName(t, n); got != "api" {
		t.Fatalf("second expand should drill into api, got %s", got)
	}

	press(n, RuneKey('l'))
	if got := selectedName(t, n); got != "api" {
		t.Fatalf("expand on a leaf should be a no-op, got %s", got)
	}

	press(n, RuneKey('h'))
	if got := selectedName(t, n); got != "backend" {
		t.Fatalf("collapse on a leaf should move to parent, got %s", got)
	}

	press(n, Key{Code: KeyLeft})
	if n.Tree().Expanded(n.Rows()[n.Selected()].Node) {
		t.Fatal("expected backend collapsed")
	}
	if got := selectedName(t, n); got != "backend" {
		t.Fatalf("collapse should keep selection on backend, got %s", got)
	}
	if len(n.Rows()) != before {
		t.Errorf("expected projection restored to %d rows, got %d", before, len(n.Rows()))
	}

	press(n, RuneKey('h'))
	if got := selectedName(t, n); got != "dev-platform" {
		t.Fatalf("expected parent dev-platform, got %s", got)
	}

	press(n, RuneKey('h'), RuneKey('h'))
	if got := selectedName(t, n); got != "dev-platform" || n.Selected() != 0 {
		t.Errorf("collapse on a collapsed root should be a no-op, got %s at %d", got, n.Selected())
	}
}

func TestNavigatorChildlessRoot(t *testing.T) {
	n := NewNavigator(singleRootTree())
	root := n.Rows()[0].Node
	if n.Tree().Expanded(root) {
		t.Fatal("expected childless root to start collapsed")
	}

	press(n, RuneKey('h'), RuneKey('l'))
	if n.Tree().Expanded(root) || n.Selected() != 0 || len(n.Rows()) != 1 {
		t.Errorf("expected h and l to be no-ops, got expanded=%v selected=%d rows=%d",
			n.Tree().Expanded(root), n.Selected(), len(n.Rows()))
	}
}

func TestNavigatorSelectionFollowsNode(t *testing.T) {
	t.Run("collapse keeps the collapsed node selected", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		moveTo(t, n, "data")

		n.CollapseOrParent()
		if got := selectedName(t, n); got != "data" || n.Selected() != 4 {
			t.Fatalf("expected data at row 4, got %s at %d", got, n.Selected())
		}
		moveTo(t, n, "security")
		if n.Selected() != 5 {
			t.Errorf("expected security to shift up to row 5, got %d", n.Selected())
		}
	})

	t.Run("query narrows and clears", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		moveTo(t, n, "ingest")
		before := n.Selected()

		press(n, RuneKey('/'))
		typeText(n, "in")
		if len(n.Rows()) != 1 || selectedName(t, n) != "ingest" {
			t.Fatalf("expected only ingest selected, got %d rows", len(n.Rows()))
		}

		press(n, Key{Code: KeyEsc})
		if n.Selected() != before || selectedName(t, n) != "ingest" {
			t.Errorf("expected selection back on ingest at %d, got %d", before, n.Selected())
		}
	})

	t.Run("clamps when the node is filtered out", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		moveTo(t, n, "audits")

		press(n, RuneKey('/'))
		typeText(n, "ing")
		if len(n.Rows()) != 1 || n.Selected() != 0 {
			t.Errorf("expected clamp to the only row, got %d of %d", n.Selected(), len(n.Rows()))
		}
	})

	t.Run("empty projection selects zero", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('G'), RuneKey('/'))
		typeText(n, "zzz")
		if len(n.Rows()) != 0 || n.Selected() != 0 {
			t.Errorf("expected empty projection at 0, got %d rows at %d", len(n.Rows()), n.Selected())
		}
	})
}

func TestNavigatorSearch(t *testing.T) {
	t.Run("command keys are typed while editing", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('/'))
		if act := press(n, RuneKey('q'), RuneKey('r'), RuneKey('/'), RuneKey('y')); act != ActionNone {
			t.Errorf("expected no action while editing, got %v", act)
		}
		if q, ok := n.Query(); !ok || q != "qr/y" {
			t.Errorf("expected query qr/y, got %q", q)
		}
		if !n.Searching() {
			t.Error("expected to still be editing")
		}
	})

	t.Run("enter applies the query", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('/'))
		typeText(n, "dat")
		press(n, Key{Code: KeyEnter})

		if n.Searching() {
			t.Error("expected editing to end")
		}
		if q, ok := n.Query(); !ok || q != "dat" {
			t.Errorf("expected applied query dat, got %q %v", q, ok)
		}
		if act := press(n, RuneKey('q')); act != ActionQuit {
			t.Errorf("expected q to quit once applied, got %v", act)
		}
	})

	t.Run("enter with empty query clears the filter", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('/'), Key{Code: KeyEnter})
		if _, ok := n.Query(); ok {
			t.Error("expected no query")
		}
	})

	t.Run("backspace pops one character", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('/'))
		typeText(n, "déf")
		press(n, Key{Code: KeyBackspace})
		if q, _ := n.Query(); q != "dé" {
			t.Errorf("expected dé, got %q", q)
		}
		press(n, Key{Code: KeyBackspace}, Key{Code: KeyBackspace}, Key{Code: KeyBackspace})
		if q, ok := n.Query(); !ok || q != "" {
			t.Errorf("expected empty query while editing, got %q %v", q, ok)
		}
	})

	t.Run("esc clears query and mode", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('/'))
		typeText(n, "api")
		press(n, Key{Code: KeyEsc})
		if n.Searching() {
			t.Error("expected editing to end")
		}
		if _, ok := n.Query(); ok {
			t.Error("expected query cleared")
		}
	})

	t.Run("esc outside editing clears applied query", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('/'))
		typeText(n, "api")
		press(n, Key{Code: KeyEnter}, Key{Code: KeyEsc})
		if _, ok := n.Query(); ok {
			t.Error("expected query cleared")
		}
	})

	t.Run("other keys are ignored while editing", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('/'), Key{Code: KeyDown}, Key{Code: KeyOther})
		if n.Selected() != 0 {
			t.Errorf("expected no movement, got %d", n.Selected())
		}
	})

	t.Run("editing clears a pending chord", func(t *testing.T) {
		n := NewNavigator(domain.SampleTree())
		press(n, RuneKey('g'), RuneKey('/'), RuneKey('g'))
		if n.ChordPending() {
			t.Error("expected chord cleared while editing")
		}
	})
}

func TestNavigatorActions(t *testing.T) {
	tests := []struct {
		key  Key
		want Action
	}{
		{RuneKey('q'), ActionQuit},
		{RuneKey('r'), ActionReload},
		{RuneKey('y'), ActionYank},
		{RuneKey('o'), ActionOpen},
		{RuneKey('j'), ActionNone},
		{Key{Code: KeyEnter}, ActionNone},
	}

	for _, tt := range tests {
		n := NewNavigator(domain.SampleTree())
		if got := n.HandleKey(tt.key); got != tt.want {
			t.Errorf("HandleKey(%+v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestDetailLines(t *testing.T) {
	t.Run("omits missing last activity", func(t *testing.T) {
		lines := DetailLines(domain.Node{
			Name: "root", Kind: domain.KindGroup, Path: "root",
			Visibility: "private", URL: "https://example.com/root",
		})
		want := []string{
			"Name: root",
			"Kind: Group",
			"Path: root",
			"Visibility: private",
			"URL: https://example.com/root",
		}
		if !slices.Equal(lines, want) {
			t.Errorf("got %v, want %v", lines, want)
		}
	})

	t.Run("includes last activity when present", func(t *testing.T) {
		lines := DetailLines(domain.Node{
			Name: "proj", Kind: domain.KindProject, LastActivity: "2024-01-01T00:00:00Z",
		})
		if lines[1] != "Kind: Project" {
			t.Errorf("unexpected kind line %q", lines[1])
		}
		if lines[len(lines)-1] != "Last activity: 2024-01-01T00:00:00Z" {
			t.Errorf("unexpected last line %q", lines[len(lines)-1])
		}
	})
}
