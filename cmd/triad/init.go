package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/triad/internal/project"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a project for triad",
	Long: `Initialize a directory for use with triad.

Detects the project's toolchain and layout and writes a starter context
artifact to .triad/context.yaml. Agents interpolate that artifact into
their system prompts, so edit it to describe the project accurately.

The directory argument is optional and defaults to the current directory.

Examples:
  triad init              # Initialize current directory
  triad init ./myproject  # Initialize specific directory
  triad init --force      # Overwrite an existing context artifact`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing context artifact")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", absPath, err)
	}

	fmt.Printf("Initializing triad in %s...\n\n", absPath)

	contextPath := filepath.Join(absPath, ".triad", "context.yaml")
	if _, err := os.Stat(contextPath); err == nil && !initForce {
		fmt.Println("Context artifact already exists. Use --force to overwrite.")
		return nil
	}

	proj := project.Detect(absPath)
	if err := proj.Save(contextPath); err != nil {
		printStatus("✗", "Could not write context artifact", color.FgRed)
		return err
	}

	typ := "unknown"
	if t, ok := proj.Architecture["type"].(string); ok {
		typ = t
	}
	printStatus("✓", fmt.Sprintf("Detected %s project %q", typ, proj.Name), color.FgGreen)
	printStatus("✓", "Created .triad/context.yaml", color.FgGreen)

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		printStatus("⚠", "ANTHROPIC_API_KEY not set (you can set it later)", color.FgYellow)
	} else {
		printStatus("✓", "ANTHROPIC_API_KEY is set", color.FgGreen)
	}

	fmt.Printf("\n%s triad initialization complete!\n\n", color.GreenString("✓"))
	fmt.Println("Next steps:")
	if apiKey == "" {
		fmt.Println("  1. Set your API key:")
		fmt.Println("     export ANTHROPIC_API_KEY=your-key-here")
		fmt.Println()
	}
	fmt.Println("  2. Review the detected context:")
	fmt.Printf("     %s\n", contextPath)
	fmt.Println()
	fmt.Println("  3. Run a workflow:")
	fmt.Println("     triad run review <files...>")
	fmt.Println()

	return nil
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
