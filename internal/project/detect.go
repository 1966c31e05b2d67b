package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Detect analyzes a repository and produces a seeded Context for it.
// Used by `triad init` to write the first context artifact; the result is
// a starting point the user is expected to edit.
func Detect(dir string) Context {
	typ, build, test := detectToolchain(dir)

	arch := map[string]any{
		"type": typ,
	}
	if len(build) > 0 {
		arch["build_command"] = strings.Join(build, " ")
	}
	if len(test) > 0 {
		arch["test_command"] = strings.Join(test, " ")
	}
	if layout := detectLayout(dir); len(layout) > 0 {
		arch["layout"] = layout
	}

	name := filepath.Base(dir)
	if abs, err := filepath.Abs(dir); err == nil {
		name = filepath.Base(abs)
	}

	var stack []string
	if typ != "unknown" {
		stack = append(stack, typ)
	}

	return Context{
		Name:         name,
		Description:  fmt.Sprintf("%s (%s project)", name, typ),
		Stack:        stack,
		Architecture: arch,
	}
}

// detectToolchain examines marker files to classify the project and pick
// its build and test commands.
func detectToolchain(dir string) (typ string, build, test []string) {
	switch {
	case fileExists(filepath.Join(dir, "go.mod")):
		return "go",
			[]string{"go", "build", "./..."},
			[]string{"go", "test", "./..."}

	case fileExists(filepath.Join(dir, "Cargo.toml")):
		return "rust",
			[]string{"cargo", "build"},
			[]string{"cargo", "test"}

	case fileExists(filepath.Join(dir, "pyproject.toml")),
		fileExists(filepath.Join(dir, "setup.py")),
		fileExists(filepath.Join(dir, "requirements.txt")):
		test = []string{"python", "-m", "unittest", "discover"}
		if dirExists(filepath.Join(dir, "tests")) || fileExists(filepath.Join(dir, "pytest.ini")) {
			test = []string{"pytest"}
		}
		return "python", nil, test

	case fileExists(filepath.Join(dir, "package.json")):
		build = nil
		test = []string{"npm", "test"}
		pkgData, _ := os.ReadFile(filepath.Join(dir, "package.json"))
		pkgContent := string(pkgData)
		if strings.Contains(pkgContent, `"build"`) {
			build = []string{"npm", "run", "build"}
		} else if fileExists(filepath.Join(dir, "tsconfig.json")) {
			build = []string{"npx", "tsc", "--noEmit"}
		}
		if strings.Contains(pkgContent, "vitest") {
			test = []string{"npx", "vitest", "run"}
		} else if strings.Contains(pkgContent, "jest") {
			test = []string{"npx", "jest"}
		}
		return "node", build, test

	default:
		return "unknown", nil, nil
	}
}

// detectLayout lists well-known top-level source directories present in
// the repository.
func detectLayout(dir string) []string {
	var layout []string
	for _, d := range []string{"cmd", "internal", "pkg", "src", "lib", "app", "tests", "docs"} {
		if dirExists(filepath.Join(dir, d)) {
			layout = append(layout, d)
		}
	}
	return layout
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
