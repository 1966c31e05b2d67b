package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ShayCichocki/triad/pkg/models"
)

// Run is one recorded workflow execution.
type Run struct {
	ID             string    `json:"id"`
	Workflow       string    `json:"workflow"`
	Model          string    `json:"model"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	FailedTasks    int       `json:"failed_tasks"`
	SkippedTasks   int       `json:"skipped_tasks"`
	InputTokens    int64     `json:"input_tokens"`
	OutputTokens   int64     `json:"output_tokens"`
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// StoredResult is one per-task row of a recorded run. The generated text
// itself is not persisted; the report document carries it.
type StoredResult struct {
	RunID     string   `json:"run_id"`
	Position  int      `json:"position"`
	AgentKind string   `json:"agent_kind"`
	Status    string   `json:"status"`
	Error     string   `json:"error,omitempty"`
	Files     []string `json:"files,omitempty"`
}

// SaveRun records a run and its per-task results in one transaction.
// Result rows are stored in dispatch order.
func (db *DB) SaveRun(run *Run, results []models.ResultRecord) error {
	return db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (id, workflow, model, started_at, finished_at,
				total_tasks, completed_tasks, failed_tasks, skipped_tasks,
				input_tokens, output_tokens)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, run.Workflow, run.Model, formatTime(run.StartedAt), formatTime(run.FinishedAt),
			run.TotalTasks, run.CompletedTasks, run.FailedTasks, run.SkippedTasks,
			run.InputTokens, run.OutputTokens)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for i, record := range results {
			files, _ := json.Marshal(record.EchoedFiles())
			_, err := tx.Exec(`
				INSERT INTO run_results (run_id, position, agent_kind, status, error, files)
				VALUES (?, ?, ?, ?, ?, ?)
			`, run.ID, i, string(record.AgentKind), string(record.Status), record.Error, string(files))
			if err != nil {
				return fmt.Errorf("insert run result %d: %w", i, err)
			}
		}

		return nil
	})
}

// GetRun retrieves a run by ID.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, workflow, model, started_at, finished_at,
			total_tasks, completed_tasks, failed_tasks, skipped_tasks,
			input_tokens, output_tokens
		FROM runs WHERE id = ?
	`, id)

	var r Run
	var startedAt, finishedAt string
	err := row.Scan(&r.ID, &r.Workflow, &r.Model, &startedAt, &finishedAt,
		&r.TotalTasks, &r.CompletedTasks, &r.FailedTasks, &r.SkippedTasks,
		&r.InputTokens, &r.OutputTokens)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	r.StartedAt, _ = parseTime(startedAt)
	r.FinishedAt, _ = parseTime(finishedAt)
	return &r, nil
}

// RecentRuns lists the most recent runs, newest first. A limit <= 0
// returns all runs.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	query := `
		SELECT id, workflow, model, started_at, finished_at,
			total_tasks, completed_tasks, failed_tasks, skipped_tasks,
			input_tokens, output_tokens
		FROM runs ORDER BY started_at DESC, id DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, finishedAt string
		if err := rows.Scan(&r.ID, &r.Workflow, &r.Model, &startedAt, &finishedAt,
			&r.TotalTasks, &r.CompletedTasks, &r.FailedTasks, &r.SkippedTasks,
			&r.InputTokens, &r.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = parseTime(startedAt)
		r.FinishedAt, _ = parseTime(finishedAt)
		runs = append(runs, r)
	}
	return runs, nil
}

// RunResults lists a run's per-task rows in dispatch order.
func (db *DB) RunResults(runID string) ([]StoredResult, error) {
	rows, err := db.Query(`
		SELECT run_id, position, agent_kind, status, error, files
		FROM run_results WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run results: %w", err)
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		var sr StoredResult
		var errMsg, files sql.NullString
		if err := rows.Scan(&sr.RunID, &sr.Position, &sr.AgentKind, &sr.Status, &errMsg, &files); err != nil {
			return nil, fmt.Errorf("scan run result: %w", err)
		}
		if errMsg.Valid {
			sr.Error = errMsg.String
		}
		if files.Valid && files.String != "" {
			json.Unmarshal([]byte(files.String), &sr.Files)
		}
		results = append(results, sr)
	}
	return results, nil
}

// PurgeOldRuns deletes runs that started before the cutoff. Result rows
// cascade. Returns the number of runs deleted.
func (db *DB) PurgeOldRuns(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := db.Exec(`
		DELETE FROM runs WHERE started_at < ?
	`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("purge old runs: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return count, nil
}
