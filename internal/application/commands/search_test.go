package commands

import (
	"context"
	"testing"

	"gitlabtree/internal/domain"
)

func TestSearchCommand(t *testing.T) {
	tree := domain.SampleTree()

	tests := []struct {
		name      string
		query     string
		limit     int
		wantFirst string
		wantCount int // -1 skips the count check
	}{
		{
			name:      "exact name ranks first",
			query:     "api",
			wantFirst: "api",
			wantCount: -1,
		},
		{
			name:      "case insensitive",
			query:     "AUDITS",
			wantFirst: "audits",
			wantCount: 1,
		},
		{
			name:      "matches hidden nodes",
			query:     "churn",
			wantFirst: "churn",
			wantCount: 1,
		},
		{
			name:      "path matches",
			query:     "models/fraud",
			wantFirst: "fraud",
			wantCount: 1,
		},
		{
			name:      "no match",
			query:     "zzz",
			wantCount: 0,
		},
		{
			name:      "empty query",
			query:     "",
			wantCount: 0,
		},
		{
			name:      "limit caps results",
			query:     "a",
			limit:     3,
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := NewSearchCommand(tree, tt.query, tt.limit).Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantCount < 0 && len(results) == 0 {
				t.Fatal("expected results")
			}
			if tt.wantCount >= 0 && len(results) != tt.wantCount {
				t.Fatalf("expected %d results, got %d: %+v", tt.wantCount, len(results), results)
			}
			if tt.wantFirst != "" && results[0].Name != tt.wantFirst {
				t.Errorf("expected %s first, got %s", tt.wantFirst, results[0].Name)
			}
		})
	}
}
