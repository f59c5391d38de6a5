// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all contacts configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	UI      UI      `yaml:"ui"`
}

// Storage holds local persistence settings.
type Storage struct {
	Backend string `yaml:"backend"` // "file" | "sqlite" | "memory"
	Dir     string `yaml:"dir"`     // Data directory (store files, profile.yaml, viewer.json)
	Key     string `yaml:"key"`     // Key the editor list is stored under
}

// Log holds file logging settings. The TUI owns the terminal, so logs only
// go to a file.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`  // Empty disables logging
}

// UI holds terminal UI settings.
type UI struct {
	Variant string `yaml:"variant"` // "viewer" | "profile" | "editor"
	Title   string `yaml:"title"`   // Label shown in the help bar
}

// Variant names.
const (
	VariantViewer  = "viewer"
	VariantProfile = "profile"
	VariantEditor  = "editor"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			Backend: "file",
			Dir:     ".contacts",
			Key:     "contacts",
		},
		Log: Log{
			Level: "info",
		},
		UI: UI{
			Variant: VariantEditor,
			Title:   "Contacts",
		},
	}
}

// ProfilePath returns the path of the profile override document.
func (c *Config) ProfilePath() string {
	return filepath.Join(c.Storage.Dir, "profile.yaml")
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
		// valid
	default:
		return fmt.Errorf("config: storage.backend must be \"file\", \"sqlite\" or \"memory\", got %q", c.Storage.Backend)
	}
	if c.Storage.Dir == "" && c.Storage.Backend != "memory" {
		return errors.New("config: storage.dir cannot be empty")
	}
	if c.Storage.Key == "" {
		return errors.New("config: storage.key cannot be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.UI.Variant {
	case VariantViewer, VariantProfile, VariantEditor:
		// valid
	default:
		return fmt.Errorf("config: ui.variant must be \"viewer\", \"profile\" or \"editor\", got %q", c.UI.Variant)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTS_STORAGE_BACKEND, CONTACTS_STORAGE_DIR,
// CONTACTS_LOG_LEVEL, CONTACTS_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTS_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("CONTACTS_STORAGE_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("CONTACTS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CONTACTS_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage *rawStorage `yaml:"storage"`
	Log     *rawLog     `yaml:"log"`
	UI      *rawUI      `yaml:"ui"`
}

type rawStorage struct {
	Backend *string `yaml:"backend"`
	Dir     *string `yaml:"dir"`
	Key     *string `yaml:"key"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

type rawUI struct {
	Variant *string `yaml:"variant"`
	Title   *string `yaml:"title"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Storage != nil {
		if layer.Storage.Backend != nil {
			c.Storage.Backend = *layer.Storage.Backend
		}
		if layer.Storage.Dir != nil {
			c.Storage.Dir = *layer.Storage.Dir
		}
		if layer.Storage.Key != nil {
			c.Storage.Key = *layer.Storage.Key
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
	if layer.UI != nil {
		if layer.UI.Variant != nil {
			c.UI.Variant = *layer.UI.Variant
		}
		if layer.UI.Title != nil {
			c.UI.Title = *layer.UI.Title
		}
	}
}
