package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jimkring/mirascope/internal/core/domain"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise a mirascope project",
	Long: `Creates the prompts and versions directories and writes a settings
file with defaults. Run it once at the project root.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	store := resolveSettingsStore()
	if store.Exists() {
		return fmt.Errorf("already initialised: settings file %s exists", store.Path())
	}

	// The settings file keeps relative locations; directories are
	// created relative to the project directory.
	settings := domain.DefaultSettings()
	resolved := resolveProjectPaths(settings)
	for _, dir := range []string{
		resolved.MirascopeLocation,
		resolved.PromptsLocation,
		resolved.VersionsLocation,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		cmd.Printf("Creating %s\n", stylePath.Render(dir))
	}

	if err := store.Save(settings); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	cmd.Printf("Creating %s\n", stylePath.Render(store.Path()))

	cmd.Println("Initialization complete.")
	return nil
}
