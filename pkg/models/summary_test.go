package models

import "testing"

func TestSummarize_Counts(t *testing.T) {
	results := []ResultRecord{
		CompletedReview("ok", nil),
		ErrorRecord(KindTest, "timed out"),
		CompletedDocumentation("docs", nil),
	}

	s := Summarize(results, 2)

	if s.TotalTasks != 3 {
		t.Errorf("TotalTasks = %d, want 3", s.TotalTasks)
	}
	if s.CompletedTasks != 2 {
		t.Errorf("CompletedTasks = %d, want 2", s.CompletedTasks)
	}
	if s.FailedTasks != 1 {
		t.Errorf("FailedTasks = %d, want 1", s.FailedTasks)
	}
	if s.SkippedTasks != 2 {
		t.Errorf("SkippedTasks = %d, want 2", s.SkippedTasks)
	}
	if s.CompletedTasks+s.FailedTasks != len(s.Results) {
		t.Error("completed + failed must equal len(results)")
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 0)

	if s.TotalTasks != 0 || s.CompletedTasks != 0 || s.FailedTasks != 0 || s.SkippedTasks != 0 {
		t.Errorf("empty summary should be all zeros, got %+v", s)
	}
}

func TestSummarize_TotalAlwaysMatchesResults(t *testing.T) {
	// Skipped tasks never inflate TotalTasks.
	results := []ResultRecord{CompletedTests("t", nil)}
	s := Summarize(results, 5)

	if s.TotalTasks != len(s.Results) {
		t.Errorf("TotalTasks = %d, want len(Results) = %d", s.TotalTasks, len(s.Results))
	}
}
