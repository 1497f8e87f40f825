package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jimkring/mirascope/internal/core/domain"
	"github.com/jimkring/mirascope/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsFileName is the settings file expected at the project root.
const SettingsFileName = "mirascope.toml"

// SettingsStore is a TOML-based implementation of driven.SettingsStore.
// Keys absent from the file take their defaults, so a minimal file can
// override just one location.
type SettingsStore struct {
	path string
}

// NewSettingsStore creates a settings store for the project rooted at
// dir. An empty dir means the current directory.
func NewSettingsStore(dir string) *SettingsStore {
	if dir == "" {
		dir = "."
	}
	return &SettingsStore{path: filepath.Join(dir, SettingsFileName)}
}

// settingsFile mirrors the TOML layout of mirascope.toml.
type settingsFile struct {
	Mirascope settingsTable `toml:"mirascope"`
}

type settingsTable struct {
	MirascopeLocation string `toml:"mirascope_location"`
	PromptsLocation   string `toml:"prompts_location"`
	VersionsLocation  string `toml:"versions_location"`
	VersionFileName   string `toml:"version_file_name"`
	AutoTag           bool   `toml:"auto_tag"`
}

func fromDomain(s domain.Settings) settingsTable {
	return settingsTable{
		MirascopeLocation: s.MirascopeLocation,
		PromptsLocation:   s.PromptsLocation,
		VersionsLocation:  s.VersionsLocation,
		VersionFileName:   s.VersionFileName,
		AutoTag:           s.AutoTag,
	}
}

func (t settingsTable) toDomain() domain.Settings {
	return domain.Settings{
		MirascopeLocation: t.MirascopeLocation,
		PromptsLocation:   t.PromptsLocation,
		VersionsLocation:  t.VersionsLocation,
		VersionFileName:   t.VersionFileName,
		AutoTag:           t.AutoTag,
	}
}

// Load reads and validates mirascope.toml.
func (s *SettingsStore) Load() (domain.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Settings{}, fmt.Errorf("settings file %s: %w", s.path, domain.ErrNoSettings)
		}
		return domain.Settings{}, fmt.Errorf("read settings file %s: %w", s.path, err)
	}

	// Unmarshal over the defaults so absent keys keep them.
	cfg := settingsFile{Mirascope: fromDomain(domain.DefaultSettings())}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return domain.Settings{}, fmt.Errorf("parse settings file %s: %w", s.path, err)
	}

	settings := cfg.Mirascope.toDomain()
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("settings file %s: %w", s.path, err)
	}
	return settings, nil
}

// Save writes the settings file, replacing any existing one.
func (s *SettingsStore) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(settingsFile{Mirascope: fromDomain(settings)})
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings file %s: %w", s.path, err)
	}
	return nil
}

// Exists reports whether a settings file is already present.
func (s *SettingsStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.path
}
