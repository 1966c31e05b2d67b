// Package tui renders live progress for triad workflow runs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/triad/pkg/models"
)

// Row statuses for the task list.
const (
	rowRunning = "running"
	rowDone    = "done"
	rowFailed  = "failed"
	rowSkipped = "skipped"
)

// taskRow is one dispatched task in the progress list.
type taskRow struct {
	dispatchID  string
	kind        models.TaskKind
	description string
	status      string
	detail      string
}

// TaskStartedMsg is sent when the orchestrator hands a task to its agent.
type TaskStartedMsg struct {
	DispatchID  string
	Kind        models.TaskKind
	Description string
}

// TaskFinishedMsg is sent when a dispatched task produced its result record.
type TaskFinishedMsg struct {
	DispatchID string
	Failed     bool
	Message    string
}

// TaskSkippedMsg is sent when a task had no registered agent.
type TaskSkippedMsg struct {
	Kind        models.TaskKind
	Description string
	Message     string
}

// WorkflowDoneMsg is sent when the whole batch has finished.
type WorkflowDoneMsg struct {
	Summary models.WorkflowSummary
	Err     error
}

// WorkflowApp is the bubbletea model for the run command TUI.
type WorkflowApp struct {
	title string
	total int

	rows    []taskRow
	summary *models.WorkflowSummary
	spin    spinner.Model

	width    int
	height   int
	quitting bool
	done     bool
	err      error

	// Styles
	headerStyle   lipgloss.Style
	labelStyle    lipgloss.Style
	kindStyle     lipgloss.Style
	detailStyle   lipgloss.Style
	doneStyle     lipgloss.Style
	failedStyle   lipgloss.Style
	skippedStyle  lipgloss.Style
	footerStyle   lipgloss.Style
	progressFull  lipgloss.Style
	progressEmpty lipgloss.Style
}

// NewWorkflowApp creates a WorkflowApp for a run of total tasks. The title
// names the workflow, e.g. "Review Workflow".
func NewWorkflowApp(title string, total int) *WorkflowApp {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &WorkflowApp{
		title: title,
		total: total,
		rows:  make([]taskRow, 0, total),
		spin:  spin,

		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),

		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10),

		kindStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(10),

		detailStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		doneStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true),

		failedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		skippedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		progressFull: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")),

		progressEmpty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// Init implements tea.Model.
func (a *WorkflowApp) Init() tea.Cmd {
	return a.spin.Tick
}

// Update implements tea.Model.
func (a *WorkflowApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case spinner.TickMsg:
		if a.done {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case TaskStartedMsg:
		a.rows = append(a.rows, taskRow{
			dispatchID:  msg.DispatchID,
			kind:        msg.Kind,
			description: msg.Description,
			status:      rowRunning,
		})

	case TaskFinishedMsg:
		for i := range a.rows {
			if a.rows[i].dispatchID == msg.DispatchID {
				if msg.Failed {
					a.rows[i].status = rowFailed
					a.rows[i].detail = msg.Message
				} else {
					a.rows[i].status = rowDone
				}
				break
			}
		}

	case TaskSkippedMsg:
		a.rows = append(a.rows, taskRow{
			kind:        msg.Kind,
			description: msg.Description,
			status:      rowSkipped,
			detail:      msg.Message,
		})

	case WorkflowDoneMsg:
		a.done = true
		a.summary = &msg.Summary
		a.err = msg.Err
		// Don't quit immediately - let user see the final state
	}

	return a, nil
}

// View implements tea.Model.
func (a *WorkflowApp) View() string {
	if a.quitting {
		return "Workflow cancelled.\n"
	}

	var b strings.Builder

	b.WriteString(a.headerStyle.Render(fmt.Sprintf("=== Triad %s ===", a.title)))
	b.WriteString("\n\n")

	finished := a.finishedCount()
	b.WriteString(a.labelStyle.Render("Tasks:"))
	b.WriteString(fmt.Sprintf("%d/%d finished", finished, a.total))
	b.WriteString("\n")
	b.WriteString(a.renderProgressBar(a.progressPct(), 30))
	b.WriteString("\n\n")

	for _, row := range a.rows {
		b.WriteString(a.renderRow(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	b.WriteString("\n")

	return b.String()
}

// renderRow renders one task line with its status glyph.
func (a *WorkflowApp) renderRow(row taskRow) string {
	var glyph string
	switch row.status {
	case rowRunning:
		glyph = a.spin.View()
	case rowDone:
		glyph = a.doneStyle.Render("✓")
	case rowFailed:
		glyph = a.failedStyle.Render("✗")
	case rowSkipped:
		glyph = a.skippedStyle.Render("-")
	}

	desc := row.description
	if len(desc) > 60 {
		desc = desc[:57] + "..."
	}

	line := fmt.Sprintf("  %s %s %s", glyph, a.kindStyle.Render(string(row.kind)), desc)
	if row.detail != "" {
		line += "  " + a.detailStyle.Render(row.detail)
	}
	return line
}

// renderFooter renders the status line under the task list.
func (a *WorkflowApp) renderFooter() string {
	if !a.done {
		return a.footerStyle.Render("Press q to cancel")
	}
	if a.err != nil {
		return a.failedStyle.Render(fmt.Sprintf("Error: %v", a.err))
	}
	if a.summary != nil {
		status := fmt.Sprintf("Workflow complete: %d completed, %d failed, %d skipped.",
			a.summary.CompletedTasks, a.summary.FailedTasks, a.summary.SkippedTasks)
		if a.summary.FailedTasks > 0 {
			return a.failedStyle.Render(status) + " " + a.footerStyle.Render("Press q to exit.")
		}
		return a.doneStyle.Render(status) + " " + a.footerStyle.Render("Press q to exit.")
	}
	return a.doneStyle.Render("Workflow complete. Press q to exit.")
}

// renderProgressBar renders a progress bar.
func (a *WorkflowApp) renderProgressBar(pct float64, width int) string {
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}

	filled := int(pct / 100 * float64(width))
	empty := width - filled

	bar := a.progressFull.Render(strings.Repeat("█", filled)) +
		a.progressEmpty.Render(strings.Repeat("░", empty))

	return fmt.Sprintf("  %s %.0f%%", bar, pct)
}

// finishedCount counts rows that reached a terminal status.
func (a *WorkflowApp) finishedCount() int {
	n := 0
	for _, row := range a.rows {
		if row.status != rowRunning {
			n++
		}
	}
	return n
}

// progressPct converts finished rows to a percentage of the batch.
func (a *WorkflowApp) progressPct() float64 {
	if a.total <= 0 {
		return 0
	}
	return float64(a.finishedCount()) / float64(a.total) * 100
}

// Done reports whether the workflow finished and the summary arrived.
func (a *WorkflowApp) Done() bool {
	return a.done
}

// NewWorkflowProgram creates a new Bubbletea program for the run TUI.
func NewWorkflowProgram(title string, total int) (*tea.Program, *WorkflowApp) {
	app := NewWorkflowApp(title, total)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}
