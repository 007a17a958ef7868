package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/provost-sh/provost/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive wizard.
	runWizard = config.RunWizard

	// saveConfig writes the config to a file.
	saveConfig = config.Save
)

// Init runs the configuration wizard and writes the result to a file.
// With advanced set, the wizard also covers the site database, monitoring
// schedules and state directory.
func Init(ctx context.Context, outputPath string, advanced bool) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx, advanced)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := saveConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("\nConfiguration written to %s\n", outputPath)
	fmt.Println("Next: run 'provost setup' on the target server.")
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("provost - web server provisioning")
	fmt.Println("=================================")
	fmt.Println()
	fmt.Println("This wizard creates a server configuration with sensible defaults.")
	fmt.Println()
}
