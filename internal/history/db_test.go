package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ShayCichocki/triad/pkg/models"
)

// tempDBPath returns a path to a temp database file.
func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "history.db")
}

// setupTestDB creates a new temporary database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// sampleRun builds a run record with distinct counts for assertions.
func sampleRun(id string, startedAt time.Time) *Run {
	return &Run{
		ID:             id,
		Workflow:       "review",
		Model:          "claude-sonnet-4-20250514",
		StartedAt:      startedAt,
		FinishedAt:     startedAt.Add(42 * time.Second),
		TotalTasks:     2,
		CompletedTasks: 1,
		FailedTasks:    1,
		SkippedTasks:   1,
		InputTokens:    1200,
		OutputTokens:   450,
	}
}

func TestOpen(t *testing.T) {
	path := tempDBPath(t)
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("database file does not exist at %s", path)
	}
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	path := filepath.Join(nested, "history.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(nested); os.IsNotExist(err) {
		t.Errorf("parent directories not created: %s", nested)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	// Running migrations again must be a no-op.
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}

	var version int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&version); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if version != 2 {
		t.Errorf("schema version = %d, want 2", version)
	}
}

func TestSaveRunAndGetRun(t *testing.T) {
	db := setupTestDB(t)

	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	run := sampleRun("run-1", started)

	results := []models.ResultRecord{
		models.CompletedReview("looks solid", []string{"a.go", "b.go"}),
		models.ErrorRecord(models.KindTest, "API call failed: boom"),
	}

	if err := db.SaveRun(run, results); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := db.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetRun returned nil for existing run")
	}

	if got.Workflow != "review" {
		t.Errorf("Workflow = %q, want %q", got.Workflow, "review")
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}
	if got.Duration() != 42*time.Second {
		t.Errorf("Duration = %v, want 42s", got.Duration())
	}
	if got.CompletedTasks != 1 || got.FailedTasks != 1 || got.SkippedTasks != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1",
			got.CompletedTasks, got.FailedTasks, got.SkippedTasks)
	}
	if got.InputTokens != 1200 || got.OutputTokens != 450 {
		t.Errorf("tokens = %d/%d, want 1200/450", got.InputTokens, got.OutputTokens)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetRun("missing")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing run, got %+v", got)
	}
}

func TestRunResults_DispatchOrderPreserved(t *testing.T) {
	db := setupTestDB(t)

	run := sampleRun("run-ordered", time.Now())
	results := []models.ResultRecord{
		models.CompletedReview("first", []string{"x.go"}),
		models.CompletedDocumentation("second", []string{"y.go", "y.go"}),
		models.ErrorRecord(models.KindTest, "third failed"),
	}

	if err := db.SaveRun(run, results); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	stored, err := db.RunResults("run-ordered")
	if err != nil {
		t.Fatalf("RunResults failed: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("stored %d results, want 3", len(stored))
	}

	wantKinds := []string{"review", "document", "test"}
	for i, sr := range stored {
		if sr.Position != i {
			t.Errorf("stored[%d].Position = %d, want %d", i, sr.Position, i)
		}
		if sr.AgentKind != wantKinds[i] {
			t.Errorf("stored[%d].AgentKind = %q, want %q", i, sr.AgentKind, wantKinds[i])
		}
	}

	// Duplicate file entries survive the JSON round trip.
	if len(stored[1].Files) != 2 || stored[1].Files[0] != "y.go" || stored[1].Files[1] != "y.go" {
		t.Errorf("stored[1].Files = %v, want [y.go y.go]", stored[1].Files)
	}

	if stored[2].Status != string(models.StatusError) || stored[2].Error == "" {
		t.Errorf("stored[2] = %+v, want error row with message", stored[2])
	}
}

func TestRecentRuns_NewestFirstWithLimit(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := sampleRun(id, base.Add(time.Duration(i)*time.Hour))
		if err := db.SaveRun(run, nil); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", id, err)
		}
	}

	runs, err := db.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Errorf("order = [%s, %s], want [run-c, run-b]", runs[0].ID, runs[1].ID)
	}

	all, err := db.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns(0) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("RecentRuns(0) returned %d runs, want all 3", len(all))
	}
}

func TestPurgeOldRuns(t *testing.T) {
	db := setupTestDB(t)

	old := sampleRun("run-old", time.Now().Add(-48*time.Hour))
	recent := sampleRun("run-recent", time.Now())

	if err := db.SaveRun(old, []models.ResultRecord{
		models.CompletedReview("stale", nil),
	}); err != nil {
		t.Fatalf("SaveRun(old) failed: %v", err)
	}
	if err := db.SaveRun(recent, nil); err != nil {
		t.Fatalf("SaveRun(recent) failed: %v", err)
	}

	deleted, err := db.PurgeOldRuns(24 * time.Hour)
	if err != nil {
		t.Fatalf("PurgeOldRuns failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d runs, want 1", deleted)
	}

	if got, _ := db.GetRun("run-old"); got != nil {
		t.Error("old run still present after purge")
	}
	if got, _ := db.GetRun("run-recent"); got == nil {
		t.Error("recent run was purged")
	}

	// Result rows cascade with their run.
	stored, err := db.RunResults("run-old")
	if err != nil {
		t.Fatalf("RunResults failed: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("purged run still has %d result rows", len(stored))
	}
}
