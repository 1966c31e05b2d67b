package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/triad/internal/api"
	"github.com/ShayCichocki/triad/internal/config"
	"github.com/ShayCichocki/triad/internal/history"
	"github.com/ShayCichocki/triad/internal/orchestrator"
	"github.com/ShayCichocki/triad/internal/project"
	"github.com/ShayCichocki/triad/internal/workflow"
	"github.com/ShayCichocki/triad/pkg/models"
)

var (
	runOutput   string
	runContext  string
	runModel    string
	runTUI      bool
	runWatch    bool
	runDebugLog string
)

var runCmd = &cobra.Command{
	Use:   "run <review|docs|test> <files...>",
	Short: "Run a dev-assistance workflow over files",
	Long: `Run a workflow over the named files.

Workflows:
  review   Comprehensive code review (security, performance, quality)
  docs     Documentation generation
  test     Test suite generation

Each task in the batch makes one completion call and produces exactly one
result record. Failures never abort the batch; they become error records
in the report. The aggregated report prints as JSON, or lands in a file
with --output.

Examples:
  triad run review internal/auth.go internal/session.go
  triad run docs pkg/models/*.go --output docs-report.json
  triad run test internal/parser.go --tui
  triad run review main.go --watch`,
	Args: cobra.MinimumNArgs(2),
	RunE: runWorkflow,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Write the JSON report to a file instead of stdout")
	runCmd.Flags().StringVar(&runContext, "context", "", "Project context artifact path (overrides config)")
	runCmd.Flags().StringVar(&runModel, "model", "", "Model identifier (overrides config)")
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "Show live progress in a TUI")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "Re-run the workflow when input files change")
	runCmd.Flags().StringVar(&runDebugLog, "debug-log", "", "Append dispatch debug output to a file")
}

// workflowSession carries everything one `triad run` invocation needs
// across initial and watch-triggered executions.
type workflowSession struct {
	orch     *orchestrator.Orchestrator
	client   *api.Client
	cfg      *config.Config
	selector string
	model    string
	tasks    []models.Task
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	selector := args[0]
	files := args[1:]

	// Validate the selector before touching config or credentials.
	tasks, err := workflow.ForSelector(selector, files)
	if err != nil {
		return err
	}

	if runTUI && runWatch {
		return fmt.Errorf("--tui and --watch cannot be combined")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	model := cfg.Anthropic.Model
	if runModel != "" {
		model = runModel
	}

	contextPath := cfg.Context.Path
	if runContext != "" {
		contextPath = runContext
	}
	proj := project.Load(contextPath)

	client, err := newCompletionClient(cfg, model)
	if err != nil {
		return err
	}

	debugPath := cfg.Debug.LogPath
	if runDebugLog != "" {
		debugPath = runDebugLog
	}
	logger, err := orchestrator.NewDebugLogger(debugPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log unavailable: %v\n", err)
		logger = orchestrator.NopLogger()
	}
	defer logger.Close()

	orch, err := orchestrator.New(
		orchestrator.RequiredConfig{
			Client:  client,
			Project: proj,
		},
		orchestrator.WithPacer(orchestrator.NewRatePacer(cfg.Dispatch.Rate, cfg.Dispatch.Burst)),
		orchestrator.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create orchestrator: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt, shutting down...")
		cancel()
	}()

	session := &workflowSession{
		orch:     orch,
		client:   client,
		cfg:      cfg,
		selector: selector,
		model:    model,
		tasks:    tasks,
	}

	if runWatch {
		return runWatchMode(ctx, session, files)
	}
	return session.runOnce(ctx)
}

// runOnce executes the batch once and emits the report. Task failures do
// not produce a command error; only construction and report-write
// problems do.
func (s *workflowSession) runOnce(ctx context.Context) error {
	s.client.Tracker().Reset()
	started := time.Now()

	var summary models.WorkflowSummary
	if runTUI {
		var err error
		summary, err = runWorkflowTUI(ctx, s.orch, workflowTitle(s.selector), s.tasks)
		if err != nil {
			return err
		}
	} else {
		summary = s.orch.RunWorkflow(ctx, s.tasks)
	}
	finished := time.Now()

	if s.cfg.History.Enabled {
		if err := s.saveHistory(started, finished, summary); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record run history: %v\n", err)
		}
	}

	report := models.WorkflowReport{
		WorkflowType: s.selector,
		Timestamp:    finished.UTC().Format(time.RFC3339),
		Results:      &summary,
	}
	if err := writeReport(report); err != nil {
		return err
	}

	printRunSummary(summary)
	return nil
}

// saveHistory records the run in the history database. Best-effort: the
// caller downgrades any error to a warning.
func (s *workflowSession) saveHistory(started, finished time.Time, summary models.WorkflowSummary) error {
	path := s.cfg.History.Path
	if path == "" {
		path = history.DefaultPath()
	}

	db, err := history.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	input, output := s.client.Tracker().Total()
	run := &history.Run{
		ID:             uuid.New().String()[:8],
		Workflow:       s.selector,
		Model:          s.model,
		StartedAt:      started,
		FinishedAt:     finished,
		TotalTasks:     summary.TotalTasks,
		CompletedTasks: summary.CompletedTasks,
		FailedTasks:    summary.FailedTasks,
		SkippedTasks:   summary.SkippedTasks,
		InputTokens:    input,
		OutputTokens:   output,
	}
	return db.SaveRun(run, summary.Results)
}

// writeReport prints the report as indented JSON, or writes it to the
// --output file when set.
func writeReport(report models.WorkflowReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if runOutput != "" {
		if err := os.WriteFile(runOutput, data, 0644); err != nil {
			return fmt.Errorf("write report to %s: %w", runOutput, err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", runOutput)
		return nil
	}

	fmt.Println(string(data))
	return nil
}

// printRunSummary prints the one-line outcome to stderr, keeping stdout
// clean for the JSON report.
func printRunSummary(summary models.WorkflowSummary) {
	line := fmt.Sprintf("%d completed, %d failed, %d skipped",
		summary.CompletedTasks, summary.FailedTasks, summary.SkippedTasks)
	if summary.FailedTasks > 0 {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("⚠"), line)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", color.GreenString("✓"), line)
}

// workflowTitle maps a selector to the TUI display title.
func workflowTitle(selector string) string {
	switch selector {
	case workflow.SelectorReview:
		return "Review Workflow"
	case workflow.SelectorDocs:
		return "Docs Workflow"
	case workflow.SelectorTest:
		return "Test Workflow"
	default:
		return "Workflow"
	}
}
