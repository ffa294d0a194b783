// Package config defines the configuration types for mtlsort.
// These types are plain data with YAML tags; loading and merging live in
// internal/configloader.
package config

import "github.com/yaklabco/mtlsort/pkg/mtl"

// OutputFormat specifies how a run is reported.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatDiff  OutputFormat = "diff"
)

// BackupsConfig controls backup behavior for in-place rewrites.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure.
type Config struct {
	// Comments selects what happens to OBJ comment lines: "keep" or "strip".
	Comments mtl.CommentPolicy `yaml:"comments"`

	// NamePrefix forms new material names (NamePrefix + index).
	NamePrefix string `yaml:"name_prefix"`

	// MaxNameLength bounds material names read from usage lines, in bytes.
	MaxNameLength int `yaml:"max_name_length"`

	// Backups configures sidecar backups of rewritten files.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun reports the rewrite without touching any file.
	DryRun bool `yaml:"-"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"-"`

	// NoBackups disables backups regardless of Backups.Enabled.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Comments:      mtl.CommentsKeep,
		NamePrefix:    mtl.DefaultNamePrefix,
		MaxNameLength: mtl.DefaultMaxNameLength,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
	}
}

// RewriterOptions converts the configuration into options for mtl.New.
func (c *Config) RewriterOptions() mtl.Options {
	if c == nil {
		return mtl.DefaultOptions()
	}
	return mtl.Options{
		NamePrefix:    c.NamePrefix,
		Comments:      c.Comments,
		MaxNameLength: c.MaxNameLength,
	}
}

// BackupsEnabled reports whether backups should be written.
func (c *Config) BackupsEnabled() bool {
	return c != nil && c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}
