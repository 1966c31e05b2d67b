package models

import "testing"

func TestTaskKind_Valid(t *testing.T) {
	tests := []struct {
		name string
		kind TaskKind
		want bool
	}{
		{"review is valid", KindReview, true},
		{"document is valid", KindDocument, true},
		{"test is valid", KindTest, true},
		{"empty string is invalid", TaskKind(""), false},
		{"unknown kind is invalid", TaskKind("refactor"), false},
		{"typo kind is invalid", TaskKind("reviews"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Valid(); got != tt.want {
				t.Errorf("TaskKind(%q).Valid() = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestTaskKind_StringValues(t *testing.T) {
	tests := []struct {
		kind TaskKind
		want string
	}{
		{KindReview, "review"},
		{KindDocument, "document"},
		{KindTest, "test"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := string(tt.kind); got != tt.want {
				t.Errorf("string(TaskKind) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewTask_Defaults(t *testing.T) {
	task := NewTask(KindReview, "review the parser", []string{"parser.go"}, []string{"check error paths"})

	if task.Kind != KindReview {
		t.Errorf("Task.Kind = %q, want %q", task.Kind, KindReview)
	}
	if task.Description != "review the parser" {
		t.Errorf("Task.Description = %q, want %q", task.Description, "review the parser")
	}
	if task.Priority != DefaultPriority {
		t.Errorf("Task.Priority = %d, want %d", task.Priority, DefaultPriority)
	}
	if task.Context == nil {
		t.Error("Task.Context should be initialized, got nil")
	}
	if len(task.Files) != 1 || task.Files[0] != "parser.go" {
		t.Errorf("Task.Files = %v, want [parser.go]", task.Files)
	}
	if len(task.Requirements) != 1 {
		t.Errorf("Task.Requirements length = %d, want 1", len(task.Requirements))
	}
}

func TestTask_FileOrderAndDuplicates(t *testing.T) {
	// Files are an ordered list, duplicates included.
	files := []string{"b.go", "a.go", "b.go"}
	task := NewTask(KindTest, "generate tests", files, nil)

	if len(task.Files) != 3 {
		t.Fatalf("Task.Files length = %d, want 3", len(task.Files))
	}
	for i, want := range files {
		if task.Files[i] != want {
			t.Errorf("Task.Files[%d] = %q, want %q", i, task.Files[i], want)
		}
	}
}
