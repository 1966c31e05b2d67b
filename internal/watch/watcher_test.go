package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testDebounce = 50 * time.Millisecond

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

// waitForBatch receives one change batch or fails the test.
func waitForBatch(t *testing.T, w *Watcher) []string {
	t.Helper()
	select {
	case changed := <-w.Changes():
		return changed
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for change notification")
		return nil
	}
}

func TestNew_RequiresFiles(t *testing.T) {
	if _, err := New(nil, 0); err == nil {
		t.Fatal("New(nil) expected error, got nil")
	}
}

func TestWatcher_ReportsWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.go")
	writeFile(t, target, "package main\n")

	w, err := New([]string{target}, testDebounce)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	writeFile(t, target, "package main\n\nfunc main() {}\n")

	changed := waitForBatch(t, w)
	abs, _ := filepath.Abs(target)
	found := false
	for _, f := range changed {
		if f == abs {
			found = true
		}
	}
	if !found {
		t.Errorf("change batch = %v, want it to contain %s", changed, abs)
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "watched.go")
	other := filepath.Join(dir, "unwatched.go")
	writeFile(t, target, "package a\n")

	w, err := New([]string{target}, testDebounce)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	writeFile(t, other, "package a\n")

	select {
	case changed := <-w.Changes():
		t.Errorf("unexpected change notification %v for unrelated file", changed)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_BatchesRapidChanges(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.go")
	second := filepath.Join(dir, "second.go")
	writeFile(t, first, "package a\n")
	writeFile(t, second, "package a\n")

	w, err := New([]string{first, second}, testDebounce)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	writeFile(t, first, "package a // edited\n")
	writeFile(t, second, "package a // edited\n")

	changed := waitForBatch(t, w)
	if len(changed) != 2 {
		t.Fatalf("batch size = %d (%v), want 2", len(changed), changed)
	}
	if changed[0] > changed[1] {
		t.Errorf("batch %v not sorted", changed)
	}
}

func TestWatcher_HandlesReplaceOnSave(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")
	writeFile(t, target, "draft\n")

	w, err := New([]string{target}, testDebounce)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	// Replace-on-save: write a sibling then rename it over the target.
	tmp := filepath.Join(dir, ".doc.md.swp")
	writeFile(t, tmp, "final\n")
	if err := os.Rename(tmp, target); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	changed := waitForBatch(t, w)
	if len(changed) == 0 {
		t.Fatal("expected the replaced file in the change batch")
	}
}

func TestClose_SafeToCallTwice(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "f.go")
	writeFile(t, target, "package f\n")

	w, err := New([]string{target}, testDebounce)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
