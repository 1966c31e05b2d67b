// Package orchestrator routes tasks to registered agents and collects
// their result records into a workflow summary.
package orchestrator

import (
	"github.com/ShayCichocki/triad/internal/agent"
	"github.com/ShayCichocki/triad/internal/project"
)

// RequiredConfig contains the minimal required configuration for an
// Orchestrator. All fields are required and have no defaults.
type RequiredConfig struct {
	// Client issues the completion calls every registered agent depends on.
	Client agent.CompletionClient
	// Project is the loaded project context shared by all agents.
	Project project.Context
}

// Option configures an Orchestrator. Use With* functions to create Options.
type Option func(*orchestratorOptions)

// orchestratorOptions holds all optional configuration.
type orchestratorOptions struct {
	pacer       Pacer
	logger      *DebugLogger
	eventBuffer int

	// Extra or replacement agents, applied after the default registry.
	agents []agent.Agent
}

// WithPacer sets the pacer that spaces dispatches. Defaults to the
// one-per-second pacer when unset.
func WithPacer(p Pacer) Option {
	return func(o *orchestratorOptions) { o.pacer = p }
}

// WithLogger sets the debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(o *orchestratorOptions) { o.logger = l }
}

// WithEventBuffer sets the event channel capacity.
func WithEventBuffer(n int) Option {
	return func(o *orchestratorOptions) { o.eventBuffer = n }
}

// WithAgent registers an agent under its own kind, replacing the default
// agent for that kind if one exists (mainly for testing).
func WithAgent(a agent.Agent) Option {
	return func(o *orchestratorOptions) { o.agents = append(o.agents, a) }
}
