package orchestrator

import (
	"time"

	"github.com/ShayCichocki/triad/pkg/models"
)

// EventType represents the type of dispatch event.
type EventType string

const (
	// EventTaskStarted indicates a task has been handed to its agent.
	EventTaskStarted EventType = "task_started"
	// EventTaskCompleted indicates a task produced a completed record.
	EventTaskCompleted EventType = "task_completed"
	// EventTaskFailed indicates a task produced an error record.
	EventTaskFailed EventType = "task_failed"
	// EventTaskSkipped indicates no agent was registered for the task's kind.
	EventTaskSkipped EventType = "task_skipped"
	// EventWorkflowDone indicates the whole batch has finished.
	EventWorkflowDone EventType = "workflow_done"
)

// Event is emitted as a workflow progresses. Events feed the TUI and
// debug logging; dropping one never affects the workflow outcome.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// DispatchID is a short identifier for one task dispatch.
	DispatchID string
	// TaskKind is the kind of the related task, if applicable.
	TaskKind models.TaskKind
	// Description is the related task's description, if applicable.
	Description string
	// Message provides additional context about the event.
	Message string
	// Timestamp is when the event occurred.
	Timestamp time.Time
}
