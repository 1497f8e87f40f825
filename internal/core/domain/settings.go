package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Settings holds the resolved project configuration. All locations are
// paths relative to the project root unless absolute. Settings are
// resolved once per invocation and immutable afterwards.
type Settings struct {
	// MirascopeLocation is the metadata root directory.
	MirascopeLocation string

	// PromptsLocation is the directory holding working prompt files.
	PromptsLocation string

	// VersionsLocation is the root directory of per-prompt snapshot
	// directories.
	VersionsLocation string

	// VersionFileName is the name of the per-prompt version pointer file.
	VersionFileName string

	// AutoTag stamps each commit with a "version:NNNN" tag when true.
	AutoTag bool
}

// DefaultSettings returns settings with sensible defaults. These match
// what "mirascope init" writes for a fresh project.
func DefaultSettings() Settings {
	return Settings{
		MirascopeLocation: ".mirascope",
		PromptsLocation:   "prompts",
		VersionsLocation:  filepath.Join(".mirascope", "versions"),
		VersionFileName:   "version.txt",
		AutoTag:           true,
	}
}

// Validate returns an error if any required setting is missing or would
// escape its directory.
func (s Settings) Validate() error {
	if s.MirascopeLocation == "" {
		return fmt.Errorf("mirascope_location is empty: %w", ErrInvalidInput)
	}
	if s.PromptsLocation == "" {
		return fmt.Errorf("prompts_location is empty: %w", ErrInvalidInput)
	}
	if s.VersionsLocation == "" {
		return fmt.Errorf("versions_location is empty: %w", ErrInvalidInput)
	}
	if s.VersionFileName == "" {
		return fmt.Errorf("version_file_name is empty: %w", ErrInvalidInput)
	}
	if strings.ContainsAny(s.VersionFileName, `/\`) {
		return fmt.Errorf("version_file_name %q contains a path separator: %w", s.VersionFileName, ErrInvalidInput)
	}
	return nil
}

// WorkingPromptPath returns the path of a prompt's working file.
func (s Settings) WorkingPromptPath(name string) string {
	return filepath.Join(s.PromptsLocation, PromptFileName(name))
}

// PromptVersionsDir returns the directory holding a prompt's snapshots
// and version pointer file.
func (s Settings) PromptVersionsDir(name string) string {
	return filepath.Join(s.VersionsLocation, name)
}

// VersionFilePath returns the path of a prompt's version pointer file.
func (s Settings) VersionFilePath(name string) string {
	return filepath.Join(s.PromptVersionsDir(name), s.VersionFileName)
}

// SnapshotPath returns the path of one committed snapshot of a prompt.
func (s Settings) SnapshotPath(name string, rev Revision) string {
	return filepath.Join(s.PromptVersionsDir(name), SnapshotFileName(name, rev))
}
