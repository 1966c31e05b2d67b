package main

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/triad/internal/orchestrator"
	"github.com/ShayCichocki/triad/internal/tui"
	"github.com/ShayCichocki/triad/pkg/models"
)

// runWorkflowTUI runs the batch behind a live progress TUI and returns
// the summary once the user exits.
func runWorkflowTUI(ctx context.Context, orch *orchestrator.Orchestrator, title string, tasks []models.Task) (models.WorkflowSummary, error) {
	// Suppress log output while the TUI is active (it corrupts the display)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	program, _ := tui.NewWorkflowProgram(title, len(tasks))

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go forwardEventsToTUI(program, orch.Events())

	summaryCh := make(chan models.WorkflowSummary, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				program.Send(tui.WorkflowDoneMsg{Err: fmt.Errorf("workflow panic: %v", r)})
				summaryCh <- models.WorkflowSummary{}
			}
		}()
		summary := orch.RunWorkflow(wctx, tasks)
		program.Send(tui.WorkflowDoneMsg{Summary: summary})
		summaryCh <- summary
	}()

	_, err := program.Run()

	// If the user quit mid-run, cancel so the remaining completion calls
	// fail fast; the batch still runs to completion and yields a summary
	// with error records.
	cancel()
	summary := <-summaryCh

	if err != nil {
		return summary, fmt.Errorf("run TUI: %w", err)
	}
	return summary, nil
}

// forwardEventsToTUI converts orchestrator events to TUI messages.
func forwardEventsToTUI(program *tea.Program, events <-chan orchestrator.Event) {
	for event := range events {
		switch event.Type {
		case orchestrator.EventTaskStarted:
			program.Send(tui.TaskStartedMsg{
				DispatchID:  event.DispatchID,
				Kind:        event.TaskKind,
				Description: event.Description,
			})
		case orchestrator.EventTaskCompleted:
			program.Send(tui.TaskFinishedMsg{DispatchID: event.DispatchID})
		case orchestrator.EventTaskFailed:
			program.Send(tui.TaskFinishedMsg{
				DispatchID: event.DispatchID,
				Failed:     true,
				Message:    event.Message,
			})
		case orchestrator.EventTaskSkipped:
			program.Send(tui.TaskSkippedMsg{
				Kind:        event.TaskKind,
				Description: event.Description,
				Message:     event.Message,
			})
		}
	}
}
