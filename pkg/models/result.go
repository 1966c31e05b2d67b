package models

// ResultStatus is the terminal state of one dispatched task.
type ResultStatus string

const (
	// StatusCompleted indicates the agent produced generated output.
	StatusCompleted ResultStatus = "completed"
	// StatusError indicates the agent captured a failure.
	StatusError ResultStatus = "error"
)

// Valid returns true if the status is a known value.
func (s ResultStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusError:
		return true
	default:
		return false
	}
}

// ReviewPayload holds the output of a completed review task.
type ReviewPayload struct {
	// Review is the generated review text.
	Review string `json:"review"`
	// FilesReviewed echoes the task's file list verbatim.
	FilesReviewed []string `json:"files_reviewed"`
}

// DocumentationPayload holds the output of a completed documentation task.
type DocumentationPayload struct {
	// Documentation is the generated Markdown documentation.
	Documentation string `json:"documentation"`
	// FilesDocumented echoes the task's file list verbatim.
	FilesDocumented []string `json:"files_documented"`
}

// TestPayload holds the output of a completed test-generation task.
type TestPayload struct {
	// Tests is the generated test source text.
	Tests string `json:"tests"`
	// FilesTested echoes the task's file list verbatim.
	FilesTested []string `json:"files_tested"`
}

// ResultRecord is the uniform envelope produced exactly once per
// dispatched task. On StatusCompleted exactly the payload matching
// AgentKind is set; on StatusError only Error carries data. The payloads
// are embedded pointers so the JSON form stays flat: a completed review
// record marshals as {"agent_kind":"review","status":"completed",
// "review":...,"files_reviewed":[...]}.
type ResultRecord struct {
	// AgentKind names the agent that produced this record.
	AgentKind TaskKind `json:"agent_kind"`
	// Status is completed or error.
	Status ResultStatus `json:"status"`

	*ReviewPayload
	*DocumentationPayload
	*TestPayload

	// Error holds the stringified failure when Status is StatusError.
	Error string `json:"error,omitempty"`
}

// CompletedReview builds a completed record for a review task.
func CompletedReview(review string, files []string) ResultRecord {
	return ResultRecord{
		AgentKind:     KindReview,
		Status:        StatusCompleted,
		ReviewPayload: &ReviewPayload{Review: review, FilesReviewed: files},
	}
}

// CompletedDocumentation builds a completed record for a documentation task.
func CompletedDocumentation(documentation string, files []string) ResultRecord {
	return ResultRecord{
		AgentKind:            KindDocument,
		Status:               StatusCompleted,
		DocumentationPayload: &DocumentationPayload{Documentation: documentation, FilesDocumented: files},
	}
}

// CompletedTests builds a completed record for a test-generation task.
func CompletedTests(tests string, files []string) ResultRecord {
	return ResultRecord{
		AgentKind:   KindTest,
		Status:      StatusCompleted,
		TestPayload: &TestPayload{Tests: tests, FilesTested: files},
	}
}

// ErrorRecord builds an error record for any kind. The message is never
// left empty; an error record must always explain itself.
func ErrorRecord(kind TaskKind, message string) ResultRecord {
	if message == "" {
		message = "unknown error"
	}
	return ResultRecord{
		AgentKind: kind,
		Status:    StatusError,
		Error:     message,
	}
}

// Valid reports whether the record satisfies its envelope invariants:
// an error record carries a non-empty message and no payload; a completed
// record carries exactly the payload matching its kind and no message.
func (r ResultRecord) Valid() bool {
	switch r.Status {
	case StatusError:
		return r.Error != "" && r.payloadCount() == 0
	case StatusCompleted:
		if r.Error != "" || r.payloadCount() != 1 {
			return false
		}
		switch r.AgentKind {
		case KindReview:
			return r.ReviewPayload != nil
		case KindDocument:
			return r.DocumentationPayload != nil
		case KindTest:
			return r.TestPayload != nil
		default:
			return false
		}
	default:
		return false
	}
}

// GeneratedText returns the generated output regardless of kind, or ""
// for error records. Safe to call on any record.
func (r ResultRecord) GeneratedText() string {
	switch {
	case r.ReviewPayload != nil:
		return r.ReviewPayload.Review
	case r.DocumentationPayload != nil:
		return r.DocumentationPayload.Documentation
	case r.TestPayload != nil:
		return r.TestPayload.Tests
	default:
		return ""
	}
}

// EchoedFiles returns the echoed input file list regardless of kind, or
// nil for error records.
func (r ResultRecord) EchoedFiles() []string {
	switch {
	case r.ReviewPayload != nil:
		return r.ReviewPayload.FilesReviewed
	case r.DocumentationPayload != nil:
		return r.DocumentationPayload.FilesDocumented
	case r.TestPayload != nil:
		return r.TestPayload.FilesTested
	default:
		return nil
	}
}

func (r ResultRecord) payloadCount() int {
	n := 0
	if r.ReviewPayload != nil {
		n++
	}
	if r.DocumentationPayload != nil {
		n++
	}
	if r.TestPayload != nil {
		n++
	}
	return n
}
