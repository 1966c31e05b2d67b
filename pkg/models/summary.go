package models

// WorkflowSummary aggregates the outcome of one workflow run. Results
// holds records in dispatch order (priority descending, stable on ties).
// TotalTasks always equals len(Results): tasks whose kind had no
// registered agent are excluded from both and reported in SkippedTasks
// instead.
type WorkflowSummary struct {
	// Results lists one record per dispatched task, in dispatch order.
	Results []ResultRecord `json:"workflow_results"`
	// TotalTasks is the number of dispatched tasks.
	TotalTasks int `json:"total_tasks"`
	// CompletedTasks counts records with StatusCompleted.
	CompletedTasks int `json:"completed_tasks"`
	// FailedTasks counts records with StatusError.
	FailedTasks int `json:"failed_tasks"`
	// SkippedTasks counts tasks whose kind had no registered agent.
	SkippedTasks int `json:"skipped_tasks"`
}

// Summarize derives a summary by scanning records in dispatch order.
func Summarize(results []ResultRecord, skipped int) *WorkflowSummary {
	s := &WorkflowSummary{
		Results:      results,
		TotalTasks:   len(results),
		SkippedTasks: skipped,
	}
	for _, r := range results {
		switch r.Status {
		case StatusCompleted:
			s.CompletedTasks++
		case StatusError:
			s.FailedTasks++
		}
	}
	return s
}

// WorkflowReport is the JSON document the CLI prints or persists.
type WorkflowReport struct {
	// WorkflowType is the selector the run was invoked with
	// (review, docs, or test).
	WorkflowType string `json:"workflow_type"`
	// Timestamp is the run completion time in RFC 3339 form.
	Timestamp string `json:"timestamp"`
	// Results is the aggregated workflow outcome.
	Results *WorkflowSummary `json:"results"`
}
