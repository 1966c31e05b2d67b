package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ShayCichocki/triad/internal/watch"
)

// runWatchMode runs the batch once, then re-runs it whenever a watched
// input file changes, until the context is cancelled.
func runWatchMode(ctx context.Context, session *workflowSession, files []string) error {
	if err := session.runOnce(ctx); err != nil {
		return err
	}

	watcher, err := watch.New(files, watch.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	fmt.Fprintln(os.Stderr, "\nWatching for changes. Press Ctrl+C to stop.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed := <-watcher.Changes():
			fmt.Fprintf(os.Stderr, "\nChange detected (%s), re-running %s workflow...\n",
				strings.Join(baseNames(changed), ", "), session.selector)
			if err := session.runOnce(ctx); err != nil {
				// Keep watching; a failed re-run should not end the session.
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// baseNames shortens absolute paths to their file names for log lines.
func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
