// Package cli implements the mirascope command line interface.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/jimkring/mirascope/internal/adapters/driven/config/file"
	"github.com/jimkring/mirascope/internal/adapters/driven/format"
	"github.com/jimkring/mirascope/internal/adapters/driven/lock"
	storagefile "github.com/jimkring/mirascope/internal/adapters/driven/storage/file"
	"github.com/jimkring/mirascope/internal/adapters/driven/template"
	"github.com/jimkring/mirascope/internal/core/domain"
	"github.com/jimkring/mirascope/internal/core/ports/driven"
	"github.com/jimkring/mirascope/internal/core/ports/driving"
	"github.com/jimkring/mirascope/internal/core/services"
	"github.com/jimkring/mirascope/internal/logger"
)

// version is the build version, injected by Execute.
var version = "dev"

// verbose enables debug logging for all commands.
var verbose bool

// projectDir is the directory the settings file is resolved from.
// Tests point it at a temporary directory.
var projectDir = "."

// settingsStore loads and saves the project settings. Replaceable in
// tests.
var settingsStore driven.SettingsStore

// versionService runs prompt version operations. Built lazily from the
// project settings; replaceable in tests.
var versionService driving.VersionService

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "mirascope",
	Short: "Prompt management and version control",
	Long: `Mirascope manages prompt files as versioned revisions.

Working prompts live as plain text files in the prompts directory.
Committing a prompt stores a numbered snapshot so earlier revisions can
be inspected, restored, and built upon at any time.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the CLI with the build version injected by main.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// resolveSettingsStore returns the settings store, defaulting to the
// TOML file store rooted at the project directory.
func resolveSettingsStore() driven.SettingsStore {
	if settingsStore == nil {
		settingsStore = configfile.NewSettingsStore(projectDir)
	}
	return settingsStore
}

// loadSettings loads the project settings and anchors relative
// locations at the project directory.
func loadSettings() (domain.Settings, error) {
	settings, err := resolveSettingsStore().Load()
	if err != nil {
		if errors.Is(err, domain.ErrNoSettings) {
			return domain.Settings{}, fmt.Errorf("%w: run 'mirascope init' first", err)
		}
		return domain.Settings{}, err
	}
	return resolveProjectPaths(settings), nil
}

// resolveProjectPaths rewrites relative locations so they resolve
// against the project directory rather than the working directory.
func resolveProjectPaths(settings domain.Settings) domain.Settings {
	settings.MirascopeLocation = anchorPath(settings.MirascopeLocation)
	settings.PromptsLocation = anchorPath(settings.PromptsLocation)
	settings.VersionsLocation = anchorPath(settings.VersionsLocation)
	return settings
}

func anchorPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}

// resolveVersionService builds the version service from the project
// settings. The built service is reused for the rest of the process.
func resolveVersionService() (driving.VersionService, error) {
	if versionService != nil {
		return versionService, nil
	}

	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	versionService = services.NewVersionService(
		settings,
		storagefile.NewVersionStore(settings),
		template.NewHeaderRenderer(),
		format.NewPromptFormatter(),
		lock.NewFileLocker(),
	)
	return versionService, nil
}
