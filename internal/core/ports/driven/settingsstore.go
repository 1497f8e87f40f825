package driven

import "github.com/jimkring/mirascope/internal/core/domain"

// SettingsStore loads and persists the project settings file.
// Implementations handle the file format (TOML) and fill unset keys
// with defaults.
type SettingsStore interface {
	// Load reads and validates the project settings. Returns an error
	// wrapping domain.ErrNoSettings if no settings file exists.
	Load() (domain.Settings, error)

	// Save writes the settings file, replacing any existing one.
	Save(settings domain.Settings) error

	// Exists reports whether a settings file is already present.
	Exists() bool

	// Path returns the settings file path.
	Path() string
}
