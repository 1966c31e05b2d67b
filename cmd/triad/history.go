package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/triad/internal/config"
	"github.com/ShayCichocki/triad/internal/history"
)

var (
	historyLimit int
	historyPurge string
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Inspect recorded workflow runs",
	Long: `Display recorded workflow runs.

Without arguments, lists recent runs. With a run ID, shows that run's
per-task results. Recording happens automatically after each run unless
history.enabled is false.

Examples:
  triad history                      # List recent runs
  triad history --limit 25           # List more runs
  triad history a1b2c3d4             # Show one run's results
  triad history --purge-older-than 720h  # Delete runs older than 30 days`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyPurge, "purge-older-than", "", "Delete runs older than this duration (e.g. 720h)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path := cfg.History.Path
	if path == "" {
		path = history.DefaultPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No run history yet. Run 'triad run <workflow> <files...>' to record one.")
		return nil
	}

	db, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate history database: %w", err)
	}

	if historyPurge != "" {
		olderThan, err := time.ParseDuration(historyPurge)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", historyPurge, err)
		}
		purged, err := db.PurgeOldRuns(olderThan)
		if err != nil {
			return fmt.Errorf("purge runs: %w", err)
		}
		fmt.Printf("Purged %d run(s) older than %s.\n", purged, olderThan)
		return nil
	}

	if len(args) == 1 {
		return displayRun(db, args[0])
	}
	return displayRecentRuns(db, historyLimit)
}

// displayRecentRuns lists the newest runs, one line each.
func displayRecentRuns(db *history.DB, limit int) error {
	runs, err := db.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Println("Recent Runs:")
	for _, r := range runs {
		counts := fmt.Sprintf("%d/%d completed", r.CompletedTasks, r.TotalTasks)
		if r.FailedTasks > 0 {
			counts += fmt.Sprintf(", %d failed", r.FailedTasks)
		}
		if r.SkippedTasks > 0 {
			counts += fmt.Sprintf(", %d skipped", r.SkippedTasks)
		}
		fmt.Printf("  %s  %-6s  %s ago  (%s)  %s\n",
			r.ID,
			r.Workflow,
			formatDuration(time.Since(r.FinishedAt)),
			formatDuration(r.Duration()),
			counts)
	}

	fmt.Println("\nRun 'triad history <run-id>' for per-task results.")
	return nil
}

// displayRun shows one run with its per-task results.
func displayRun(db *history.DB, id string) error {
	run, err := db.GetRun(id)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no run with ID %q", id)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Printf("  Workflow: %s\n", run.Workflow)
	fmt.Printf("  Model: %s\n", run.Model)
	fmt.Printf("  Finished: %s ago\n", formatDuration(time.Since(run.FinishedAt)))
	fmt.Printf("  Duration: %s\n", formatDuration(run.Duration()))
	fmt.Printf("  Tasks: %d completed, %d failed, %d skipped\n",
		run.CompletedTasks, run.FailedTasks, run.SkippedTasks)
	fmt.Printf("  Tokens: %s in / %s out\n",
		formatNumber(int(run.InputTokens)), formatNumber(int(run.OutputTokens)))

	results, err := db.RunResults(run.ID)
	if err != nil {
		return fmt.Errorf("load run results: %w", err)
	}
	if len(results) == 0 {
		return nil
	}

	fmt.Println("\nResults:")
	for _, res := range results {
		line := fmt.Sprintf("  %d. %-9s %s", res.Position+1, res.AgentKind, res.Status)
		if res.Error != "" {
			line += ": " + res.Error
		}
		fmt.Println(line)
		if len(res.Files) > 0 {
			fmt.Printf("     files: %s\n", strings.Join(res.Files, ", "))
		}
	}

	return nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m > 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	days := int(d.Hours()) / 24
	return fmt.Sprintf("%dd", days)
}

// formatNumber formats a number with commas.
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	// Add commas every 3 digits from the right
	var result strings.Builder
	offset := len(s) % 3
	if offset > 0 {
		result.WriteString(s[:offset])
		if len(s) > offset {
			result.WriteString(",")
		}
	}
	for i := offset; i < len(s); i += 3 {
		result.WriteString(s[i : i+3])
		if i+3 < len(s) {
			result.WriteString(",")
		}
	}
	return result.String()
}
