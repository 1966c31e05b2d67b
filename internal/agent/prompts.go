// Package agent provides the specialized prompt-construction agents for triad.
package agent

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/triad/internal/project"
)

// reviewFocus steers the reviewer toward quality, security, and correctness.
const reviewFocus = `You are a senior code reviewer specializing in production systems.
Focus on:
- Code quality, security, and performance
- Business logic correctness and error handling
- Concurrency patterns and resource management
- Type safety and documentation
- Following project patterns and best practices
`

// documentationFocus steers the writer toward complete, usable documentation.
const documentationFocus = `You are a technical documentation specialist.
Focus on:
- Clear, comprehensive documentation
- API documentation with examples
- Architecture diagrams and explanations
- User guides and setup instructions
- Code comments and docstrings
`

// testingFocus steers the generator toward thorough, realistic test suites.
const testingFocus = `You are a testing specialist.
Focus on:
- Comprehensive test coverage
- Unit, integration, and performance tests
- Realistic scenarios and edge cases
- Test data generation and fixtures
- CI/CD testing strategies
`

// reviewInstructions closes the review prompt with the expected deliverable.
const reviewInstructions = `Provide a comprehensive code review including:
1. Security issues and vulnerabilities
2. Performance optimizations
3. Code quality improvements
4. Business logic correctness
5. Compliance with project patterns
6. Specific actionable recommendations

Format your response as structured feedback with severity levels.`

// documentationInstructions closes the documentation prompt.
const documentationInstructions = `Create documentation that includes:
1. Overview and purpose
2. API endpoints with examples
3. Function/class documentation
4. Usage examples
5. Configuration options
6. Error handling
7. Performance considerations

Format the documentation in Markdown with proper structure and examples.`

// testingInstructions closes the test-generation prompt.
const testingInstructions = `Create tests that include:
1. Unit tests for all functions/methods
2. Integration tests for API endpoints
3. Realistic usage scenarios
4. Edge cases and error conditions
5. Performance tests where applicable
6. Fixtures and test data

Follow the test framework and existing test patterns of the project.
Include proper mocking for external APIs.`

// buildSystemPrompt assembles the system prompt every agent sends: a shared
// project block built from the loaded context, then the kind-specific focus.
// The architecture mapping is rendered as indented JSON so the model sees
// structure rather than a flattened map.
func buildSystemPrompt(proj project.Context, focus string) string {
	var b strings.Builder

	name := proj.Name
	if name == "" {
		name = "current"
	}
	fmt.Fprintf(&b, "You are a specialized AI assistant for the %s project.\n", name)
	if proj.Description != "" {
		b.WriteString(proj.Description)
		b.WriteString("\n")
	}

	b.WriteString("\nProject Context:\n")
	if len(proj.Stack) > 0 {
		for _, entry := range proj.Stack {
			fmt.Fprintf(&b, "- %s\n", entry)
		}
	} else {
		b.WriteString("- No stack information recorded\n")
	}

	fmt.Fprintf(&b, "\nArchitecture: %s\n\n", proj.ArchitectureJSON())
	b.WriteString(focus)

	return b.String()
}
