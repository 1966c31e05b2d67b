package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/triad/internal/agent"
	"github.com/ShayCichocki/triad/pkg/models"
)

// defaultDispatchRate paces batches at one dispatch per second unless
// configured otherwise.
const defaultDispatchRate = 1.0

// Orchestrator owns the agent registry and runs workflows. It orders tasks
// by priority, paces dispatches, and folds every outcome into exactly one
// result record per dispatched task.
type Orchestrator struct {
	agents map[models.TaskKind]agent.Agent
	pacer  Pacer
	logger *DebugLogger
	events chan Event
}

// New builds an Orchestrator with the review, documentation, and testing
// agents registered. It fails when no completion client is supplied;
// nothing else about construction can fail.
func New(req RequiredConfig, opts ...Option) (*Orchestrator, error) {
	if req.Client == nil {
		return nil, errors.New("orchestrator requires a completion client")
	}

	options := &orchestratorOptions{
		pacer:       NewRatePacer(defaultDispatchRate, 1),
		logger:      NopLogger(),
		eventBuffer: 100,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.eventBuffer < 0 {
		options.eventBuffer = 0
	}

	agents := map[models.TaskKind]agent.Agent{
		models.KindReview:   agent.NewReviewAgent(req.Client, req.Project),
		models.KindDocument: agent.NewDocumentationAgent(req.Client, req.Project),
		models.KindTest:     agent.NewTestingAgent(req.Client, req.Project),
	}
	for _, a := range options.agents {
		agents[a.Kind()] = a
	}

	return &Orchestrator{
		agents: agents,
		pacer:  options.pacer,
		logger: options.logger,
		events: make(chan Event, options.eventBuffer),
	}, nil
}

// RunWorkflow dispatches tasks in priority order and returns the summary.
// Higher priority runs first; ties keep their submission order. Tasks whose
// kind has no registered agent are skipped and counted separately. The
// batch always runs to completion: agent failures and panics become error
// records, and a dead context fails the remaining completion calls rather
// than aborting the loop.
func (o *Orchestrator) RunWorkflow(ctx context.Context, tasks []models.Task) models.WorkflowSummary {
	ordered := make([]models.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	results := make([]models.ResultRecord, 0, len(ordered))
	skipped := 0

	for _, task := range ordered {
		ag, ok := o.agents[task.Kind]
		if !ok {
			log.Printf("[orchestrator] warning: no agent registered for task kind %q", task.Kind)
			o.logger.Log("skipping %s task %q: no agent registered", task.Kind, task.Description)
			o.emit(Event{Type: EventTaskSkipped, TaskKind: task.Kind, Description: task.Description,
				Message: "no agent registered"})
			skipped++
			continue
		}

		// Skipped tasks consume no pacer tokens, so pacing happens here.
		if err := o.pacer.Wait(ctx); err != nil {
			log.Printf("[orchestrator] warning: pacer interrupted: %v", err)
			o.logger.Log("pacer interrupted: %v", err)
		}

		dispatchID := uuid.New().String()[:8]
		log.Printf("[orchestrator] processing %s task: %s", task.Kind, task.Description)
		o.logger.Log("dispatch %s: %s task %q", dispatchID, task.Kind, task.Description)
		o.emit(Event{Type: EventTaskStarted, DispatchID: dispatchID, TaskKind: task.Kind,
			Description: task.Description})

		record := o.dispatch(ctx, ag, task)
		results = append(results, record)

		if record.Status == models.StatusError {
			o.logger.Log("dispatch %s: failed: %s", dispatchID, record.Error)
			o.emit(Event{Type: EventTaskFailed, DispatchID: dispatchID, TaskKind: task.Kind,
				Description: task.Description, Message: record.Error})
		} else {
			o.logger.Log("dispatch %s: completed", dispatchID)
			o.emit(Event{Type: EventTaskCompleted, DispatchID: dispatchID, TaskKind: task.Kind,
				Description: task.Description})
		}
	}

	summary := models.Summarize(results, skipped)
	o.logger.Log("workflow done: %d total, %d completed, %d failed, %d skipped",
		summary.TotalTasks, summary.CompletedTasks, summary.FailedTasks, summary.SkippedTasks)
	o.emit(Event{Type: EventWorkflowDone,
		Message: fmt.Sprintf("%d completed, %d failed", summary.CompletedTasks, summary.FailedTasks)})

	return summary
}

// dispatch runs one task through its agent, containing panics so a broken
// agent cannot take down the rest of the batch.
func (o *Orchestrator) dispatch(ctx context.Context, ag agent.Agent, task models.Task) (record models.ResultRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[orchestrator] agent panic on %s task: %v", task.Kind, r)
			record = models.ErrorRecord(task.Kind, fmt.Sprintf("agent panic: %v", r))
		}
	}()
	return ag.Process(ctx, task)
}

// Events returns the channel of workflow progress events.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// RegisteredKinds reports which task kinds currently have an agent.
func (o *Orchestrator) RegisteredKinds() []models.TaskKind {
	kinds := make([]models.TaskKind, 0, len(o.agents))
	for kind := range o.agents {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (o *Orchestrator) emit(event Event) {
	event.Timestamp = time.Now()
	select {
	case o.events <- event:
	default:
		// Channel full, drop event to avoid blocking
	}
}
