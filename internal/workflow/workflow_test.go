package workflow

import (
	"testing"

	"github.com/ShayCichocki/triad/pkg/models"
)

func TestForSelector(t *testing.T) {
	files := []string{"a.go", "b.go"}

	tests := []struct {
		selector string
		kind     models.TaskKind
	}{
		{SelectorReview, models.KindReview},
		{SelectorDocs, models.KindDocument},
		{SelectorTest, models.KindTest},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			tasks, err := ForSelector(tt.selector, files)
			if err != nil {
				t.Fatalf("ForSelector(%q) error: %v", tt.selector, err)
			}
			if len(tasks) != 1 {
				t.Fatalf("got %d tasks, want 1", len(tasks))
			}

			task := tasks[0]
			if task.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", task.Kind, tt.kind)
			}
			if task.Priority != models.DefaultPriority {
				t.Errorf("Priority = %d, want %d", task.Priority, models.DefaultPriority)
			}
			if task.Description == "" {
				t.Error("empty description")
			}
			if len(task.Requirements) != 4 {
				t.Errorf("got %d requirements, want 4", len(task.Requirements))
			}
			for i, f := range files {
				if task.Files[i] != f {
					t.Errorf("Files[%d] = %q, want %q", i, task.Files[i], f)
				}
			}
		})
	}
}

func TestForSelectorUnknown(t *testing.T) {
	if _, err := ForSelector("refactor", nil); err == nil {
		t.Fatal("expected error for unknown selector")
	}
}

func TestSelectors(t *testing.T) {
	want := []string{"review", "docs", "test"}
	got := Selectors()
	if len(got) != len(want) {
		t.Fatalf("got %d selectors, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Selectors()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
