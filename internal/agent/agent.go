package agent

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ShayCichocki/triad/internal/api"
	"github.com/ShayCichocki/triad/internal/project"
	"github.com/ShayCichocki/triad/pkg/models"
)

// Agent handles one task kind by constructing a prompt from the task and
// project context and issuing a single completion call. Process never
// returns an error; every failure is folded into the returned record so a
// batch always yields one record per dispatched task.
type Agent interface {
	// Kind reports the task kind this agent handles.
	Kind() models.TaskKind

	// SystemPrompt returns the agent's system prompt. It is derived only
	// from the project context captured at construction, so repeated calls
	// return identical text.
	SystemPrompt() string

	// Process executes one task end to end and reports the outcome.
	Process(ctx context.Context, task models.Task) models.ResultRecord
}

// profile captures everything that differs between the three agent kinds:
// prompt fragments, sampling settings, and the completed-record constructor.
type profile struct {
	kind         models.TaskKind
	focus        string
	leadIn       string
	instructions string
	maxTokens    int64
	temperature  float64
	record       func(text string, files []string) models.ResultRecord
}

// promptAgent is the shared implementation behind all three agent kinds.
type promptAgent struct {
	client  CompletionClient
	project project.Context
	profile profile
}

var _ Agent = (*promptAgent)(nil)

// NewReviewAgent returns the agent that handles code review tasks.
// Reviews run with a tighter token budget than the other kinds.
func NewReviewAgent(client CompletionClient, proj project.Context) Agent {
	return &promptAgent{
		client:  client,
		project: proj,
		profile: profile{
			kind:         models.KindReview,
			focus:        reviewFocus,
			leadIn:       "Please review the following code:",
			instructions: reviewInstructions,
			maxTokens:    2000,
			temperature:  0.1,
			record:       models.CompletedReview,
		},
	}
}

// NewDocumentationAgent returns the agent that handles documentation tasks.
// Documentation runs slightly warmer so prose does not come out stilted.
func NewDocumentationAgent(client CompletionClient, proj project.Context) Agent {
	return &promptAgent{
		client:  client,
		project: proj,
		profile: profile{
			kind:         models.KindDocument,
			focus:        documentationFocus,
			leadIn:       "Generate comprehensive documentation for the following code:",
			instructions: documentationInstructions,
			maxTokens:    2500,
			temperature:  0.2,
			record:       models.CompletedDocumentation,
		},
	}
}

// NewTestingAgent returns the agent that handles test-generation tasks.
func NewTestingAgent(client CompletionClient, proj project.Context) Agent {
	return &promptAgent{
		client:  client,
		project: proj,
		profile: profile{
			kind:         models.KindTest,
			focus:        testingFocus,
			leadIn:       "Generate comprehensive tests for the following code:",
			instructions: testingInstructions,
			maxTokens:    2500,
			temperature:  0.1,
			record:       models.CompletedTests,
		},
	}
}

func (a *promptAgent) Kind() models.TaskKind {
	return a.profile.kind
}

func (a *promptAgent) SystemPrompt() string {
	return buildSystemPrompt(a.project, a.profile.focus)
}

// Process reads the task's files, assembles the prompt, and issues one
// completion call. The task's file list is echoed into the completed record
// verbatim, including files that could not be read.
func (a *promptAgent) Process(ctx context.Context, task models.Task) models.ResultRecord {
	blocks := readFileContents(task.Files)

	resp, err := a.client.Complete(ctx, api.CompletionRequest{
		System:      a.SystemPrompt(),
		Prompt:      buildTaskPrompt(a.profile, task, blocks),
		MaxTokens:   a.profile.maxTokens,
		Temperature: a.profile.temperature,
	})
	if err != nil {
		log.Printf("[agent] %s task failed: %v", a.profile.kind, err)
		return models.ErrorRecord(a.profile.kind, err.Error())
	}

	return a.profile.record(resp.Text, task.Files)
}

// readFileContents loads each file into a fenced block for the prompt.
// Unreadable files are logged and skipped; the task proceeds with whatever
// loaded, which may be nothing.
func readFileContents(paths []string) []string {
	blocks := make([]string, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[agent] warning: could not read %s: %v", path, err)
			continue
		}
		blocks = append(blocks, fmt.Sprintf("File: %s\n```\n%s\n```", path, content))
	}
	return blocks
}

// buildTaskPrompt assembles the user-facing half of the prompt: the kind's
// lead-in, the loaded file blocks, the task description and requirements,
// and the kind's closing instructions.
func buildTaskPrompt(p profile, task models.Task, fileBlocks []string) string {
	var b strings.Builder

	b.WriteString(p.leadIn)
	b.WriteString("\n\n")
	if len(fileBlocks) > 0 {
		b.WriteString(strings.Join(fileBlocks, "\n"))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Task Description: %s\n", task.Description)
	fmt.Fprintf(&b, "Requirements: %s\n\n", strings.Join(task.Requirements, ", "))
	b.WriteString(p.instructions)

	return b.String()
}
