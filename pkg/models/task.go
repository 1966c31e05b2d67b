// Package models defines the shared data types for triad workflows:
// tasks, per-agent result records, and workflow summaries.
package models

// TaskKind identifies which agent handles a task.
type TaskKind string

const (
	// KindReview requests a code review.
	KindReview TaskKind = "review"
	// KindDocument requests documentation generation.
	KindDocument TaskKind = "document"
	// KindTest requests test generation.
	KindTest TaskKind = "test"
)

// Valid returns true if the kind is a known value.
func (k TaskKind) Valid() bool {
	switch k {
	case KindReview, KindDocument, KindTest:
		return true
	default:
		return false
	}
}

// DefaultPriority is assigned to tasks created without an explicit rank.
const DefaultPriority = 1

// Task is one immutable unit of work. Nothing in this module mutates a
// Task after construction; the orchestrator sorts copies, never the
// caller's slice.
type Task struct {
	// Kind selects the agent that handles this task.
	Kind TaskKind `json:"kind"`
	// Description is the free-text statement of what to do.
	Description string `json:"description"`
	// Files lists input file paths in read order. Duplicates are allowed
	// and the list is echoed verbatim into the result record, readable
	// or not.
	Files []string `json:"files"`
	// Requirements are appended to the prompt, joined in order.
	Requirements []string `json:"requirements,omitempty"`
	// Context carries arbitrary structured values for the agent.
	Context map[string]any `json:"context,omitempty"`
	// Priority ranks the task; higher dispatches first. Equal priorities
	// keep their submission order.
	Priority int `json:"priority"`
}

// NewTask builds a task with the default priority.
func NewTask(kind TaskKind, description string, files, requirements []string) Task {
	return Task{
		Kind:         kind,
		Description:  description,
		Files:        files,
		Requirements: requirements,
		Context:      map[string]any{},
		Priority:     DefaultPriority,
	}
}
