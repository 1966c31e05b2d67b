package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingArtifact(t *testing.T) {
	ctx := Load(filepath.Join(t.TempDir(), "context.yaml"))

	if ctx.Name != "" || ctx.Description != "" {
		t.Errorf("missing artifact should yield empty context, got %+v", ctx)
	}
	if ctx.Architecture != nil {
		t.Errorf("missing artifact should yield nil architecture, got %v", ctx.Architecture)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.yaml")
	content := `name: billing
description: invoice pipeline
stack:
  - go
  - postgres
architecture:
  services:
    api: handles requests
  storage: postgres
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ctx := Load(path)

	if ctx.Name != "billing" {
		t.Errorf("Name = %q, want %q", ctx.Name, "billing")
	}
	if len(ctx.Stack) != 2 {
		t.Errorf("Stack length = %d, want 2", len(ctx.Stack))
	}
	if ctx.Architecture["storage"] != "postgres" {
		t.Errorf("Architecture[storage] = %v, want postgres", ctx.Architecture["storage"])
	}
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.json")
	content := `{"name":"billing","description":"invoice pipeline","architecture":{"storage":"postgres"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ctx := Load(path)

	if ctx.Name != "billing" {
		t.Errorf("Name = %q, want %q", ctx.Name, "billing")
	}
	if ctx.Architecture["storage"] != "postgres" {
		t.Errorf("Architecture[storage] = %v, want postgres", ctx.Architecture["storage"])
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ctx := Load(path)

	if ctx.Name != "" || ctx.Architecture != nil {
		t.Errorf("malformed artifact should yield empty context, got %+v", ctx)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "context.yaml")
	in := Context{
		Name:        "triad",
		Description: "dispatcher",
		Stack:       []string{"go"},
		Architecture: map[string]any{
			"type": "go",
		},
	}

	if err := in.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out := Load(path)
	if out.Name != in.Name {
		t.Errorf("Name = %q, want %q", out.Name, in.Name)
	}
	if out.Architecture["type"] != "go" {
		t.Errorf("Architecture[type] = %v, want go", out.Architecture["type"])
	}
}

func TestArchitectureJSON_Empty(t *testing.T) {
	ctx := Context{}

	if got := ctx.ArchitectureJSON(); got != "{}" {
		t.Errorf("ArchitectureJSON() = %q, want {}", got)
	}
}

func TestArchitectureJSON_Indented(t *testing.T) {
	ctx := Context{Architecture: map[string]any{"storage": "postgres"}}

	got := ctx.ArchitectureJSON()
	if !strings.Contains(got, `"storage": "postgres"`) {
		t.Errorf("ArchitectureJSON() = %q, want indented storage key", got)
	}
}

func TestDetect_GoProject(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/m\n"), 0644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "internal"), 0755); err != nil {
		t.Fatalf("mkdir internal: %v", err)
	}

	ctx := Detect(dir)

	if ctx.Architecture["type"] != "go" {
		t.Errorf("Architecture[type] = %v, want go", ctx.Architecture["type"])
	}
	if ctx.Architecture["test_command"] != "go test ./..." {
		t.Errorf("Architecture[test_command] = %v, want go test ./...", ctx.Architecture["test_command"])
	}
	layout, ok := ctx.Architecture["layout"].([]string)
	if !ok || len(layout) != 1 || layout[0] != "internal" {
		t.Errorf("Architecture[layout] = %v, want [internal]", ctx.Architecture["layout"])
	}
}

func TestDetect_UnknownProject(t *testing.T) {
	ctx := Detect(t.TempDir())

	if ctx.Architecture["type"] != "unknown" {
		t.Errorf("Architecture[type] = %v, want unknown", ctx.Architecture["type"])
	}
	if _, ok := ctx.Architecture["test_command"]; ok {
		t.Error("unknown project should carry no test_command")
	}
}

func TestDetect_NodeProject(t *testing.T) {
	dir := t.TempDir()
	pkg := `{"name":"web","scripts":{"build":"tsc","test":"vitest"},"devDependencies":{"vitest":"^1.0.0"}}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0644); err != nil {
		t.Fatalf("write package.json: %v", err)
	}

	ctx := Detect(dir)

	if ctx.Architecture["type"] != "node" {
		t.Errorf("Architecture[type] = %v, want node", ctx.Architecture["type"])
	}
	if ctx.Architecture["build_command"] != "npm run build" {
		t.Errorf("Architecture[build_command] = %v, want npm run build", ctx.Architecture["build_command"])
	}
	if ctx.Architecture["test_command"] != "npx vitest run" {
		t.Errorf("Architecture[test_command] = %v, want npx vitest run", ctx.Architecture["test_command"])
	}
}
