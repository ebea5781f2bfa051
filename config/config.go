// Package config holds the YAML configuration of the planner command line.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/nogy21/libplanner/calendar"
	"github.com/nogy21/libplanner/recurrence"
)

const (
	defaultLogLevel = "info"
	filePerm        = 0o600
	dirPerm         = 0o700
)

// Config is the top-level application configuration.
type Config struct {
	// CeilingDate is the horizon repeating events are expanded up to.
	CeilingDate calendar.Date `yaml:"ceiling_date" json:"ceiling_date"`

	// MaxOccurrences caps the instances of one expansion. Zero disables the cap.
	MaxOccurrences int `yaml:"max_occurrences" json:"max_occurrences"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		CeilingDate:    recurrence.DefaultCeiling,
		MaxOccurrences: recurrence.BoundedEngineConfig.MaxOccurrences,
		LogLevel:       defaultLogLevel,
	}
}

// Normalize fills in missing or unusable values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.CeilingDate.IsZero() {
		c.CeilingDate = recurrence.DefaultCeiling
	}
	if c.MaxOccurrences < 0 {
		c.MaxOccurrences = 0
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		c.LogLevel = defaultLogLevel
	}
}

// Level returns the slog level named by LogLevel, or info if it is unknown.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// EngineConfig converts the file settings into a recurrence engine config.
func (c *Config) EngineConfig() recurrence.EngineConfig {
	return recurrence.EngineConfig{
		Ceiling:        c.CeilingDate,
		MaxOccurrences: c.MaxOccurrences,
	}
}

// Load loads configuration from the given YAML path on fsys.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     permissions and returned.
//   - Otherwise the YAML is decoded and normalized.
func Load(fsys afero.Fs, path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(fsys, path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically through a temp file and rename. The
// parent directory is created with 0700 and the file ends up 0600.
func Save(fsys afero.Fs, path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(fsys, dir, ".planner-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer fsys.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := fsys.Chmod(tmpName, filePerm); err != nil {
		return err
	}

	return fsys.Rename(tmpName, path)
}
