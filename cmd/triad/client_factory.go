package main

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/triad/internal/api"
	"github.com/ShayCichocki/triad/internal/config"
)

// newCompletionClient builds the completion client every agent in a run
// shares. The model argument wins over the configured default. Bedrock
// runs authenticate through the AWS credential chain, so the API key is
// only resolved for the direct path.
func newCompletionClient(cfg *config.Config, model string) (*api.Client, error) {
	clientCfg := api.ClientConfig{
		Model:          anthropic.Model(model),
		RequestTimeout: cfg.Anthropic.RequestTimeout,
		UseAWSBedrock:  cfg.Anthropic.Bedrock.Enabled,
		AWSRegion:      cfg.Anthropic.Bedrock.Region,
		AWSProfile:     cfg.Anthropic.Bedrock.Profile,
	}

	if !clientCfg.UseAWSBedrock {
		key, _, err := config.ResolveAPIKey(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve API key: %w\n\n"+
				"Set it with:\n"+
				"  export ANTHROPIC_API_KEY=your-key-here\n"+
				"or: triad config anthropic.api_key your-key-here", err)
		}
		clientCfg.APIKey = key
	}

	client, err := api.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}
	return client, nil
}
