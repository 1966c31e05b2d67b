package agent

import (
	"context"

	"github.com/ShayCichocki/triad/internal/api"
)

// CompletionClient is the slice of the API client that agents depend on.
// Each Process call issues exactly one Complete call.
type CompletionClient interface {
	// Complete sends a single completion request and returns the model output.
	Complete(ctx context.Context, req api.CompletionRequest) (*api.CompletionResponse, error)

	// Model reports the model identifier requests are routed to.
	Model() string
}

// Ensure the production client satisfies CompletionClient.
var _ CompletionClient = (*api.Client)(nil)
