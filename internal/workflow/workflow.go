// Package workflow provides the canned task batches triad ships with and
// the selector that maps CLI workflow names to them.
package workflow

import (
	"fmt"

	"github.com/ShayCichocki/triad/pkg/models"
)

// Workflow names accepted on the command line.
const (
	SelectorReview = "review"
	SelectorDocs   = "docs"
	SelectorTest   = "test"
)

// Review builds the standard code review batch for the given files.
func Review(files []string) []models.Task {
	return []models.Task{models.NewTask(
		models.KindReview,
		"Comprehensive code review for security, performance, and quality",
		files,
		[]string{
			"Security vulnerability assessment",
			"Performance optimization suggestions",
			"Code quality improvements",
			"Business logic validation",
		},
	)}
}

// Documentation builds the standard documentation batch for the given files.
func Documentation(files []string) []models.Task {
	return []models.Task{models.NewTask(
		models.KindDocument,
		"Generate comprehensive documentation",
		files,
		[]string{
			"API documentation with examples",
			"Function/class documentation",
			"Usage examples",
			"Configuration guides",
		},
	)}
}

// Testing builds the standard test-generation batch for the given files.
func Testing(files []string) []models.Task {
	return []models.Task{models.NewTask(
		models.KindTest,
		"Generate comprehensive test suite",
		files,
		[]string{
			"Unit tests with high coverage",
			"Integration tests for APIs",
			"Realistic usage scenarios",
			"Edge case testing",
		},
	)}
}

// ForSelector maps a workflow name to its task batch.
func ForSelector(selector string, files []string) ([]models.Task, error) {
	switch selector {
	case SelectorReview:
		return Review(files), nil
	case SelectorDocs:
		return Documentation(files), nil
	case SelectorTest:
		return Testing(files), nil
	default:
		return nil, fmt.Errorf("unknown workflow %q (expected review, docs, or test)", selector)
	}
}

// Selectors lists the accepted workflow names in help-text order.
func Selectors() []string {
	return []string{SelectorReview, SelectorDocs, SelectorTest}
}
