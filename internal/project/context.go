// Package project loads and detects the shared project context that
// agents interpolate into their system prompts.
package project

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Context describes the project the agents assist with. Loaded once and
// read-only afterward; every agent sees the same instance.
type Context struct {
	// Name is the project name.
	Name string `yaml:"name" json:"name"`
	// Description is a short free-text summary.
	Description string `yaml:"description" json:"description"`
	// Stack lists the technologies in play, one line each.
	Stack []string `yaml:"stack" json:"stack"`
	// Architecture is a free-form nested mapping rendered into every
	// system prompt as indented JSON.
	Architecture map[string]any `yaml:"architecture" json:"architecture"`
}

// Load reads the context artifact at path. A missing or unreadable
// artifact is not an error: agents degrade to an empty context and the
// condition is logged as a warning. The codec is chosen by extension
// (.yaml/.yml or .json).
func Load(path string) Context {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[project] warning: no context artifact at %s, continuing with empty context", path)
		} else {
			log.Printf("[project] warning: cannot read context artifact %s: %v", path, err)
		}
		return Context{}
	}

	ctx, err := decode(path, data)
	if err != nil {
		log.Printf("[project] warning: malformed context artifact %s: %v", path, err)
		return Context{}
	}
	return ctx
}

func decode(path string, data []byte) (Context, error) {
	var ctx Context
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &ctx); err != nil {
			return Context{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &ctx); err != nil {
			return Context{}, fmt.Errorf("parse json: %w", err)
		}
	}
	return ctx, nil
}

// Save writes the context artifact, creating parent directories as
// needed. The codec is chosen by extension, same as Load.
func (c Context) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create context dir: %w", err)
		}
	}

	var data []byte
	var err error
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write context artifact: %w", err)
	}
	return nil
}

// ArchitectureJSON renders the architecture mapping as indented JSON for
// prompt interpolation. An empty context renders as "{}".
func (c Context) ArchitectureJSON() string {
	arch := c.Architecture
	if arch == nil {
		arch = map[string]any{}
	}
	data, err := json.MarshalIndent(arch, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
