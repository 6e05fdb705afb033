// Package config handles configuration loading and validation for squadview.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration, loaded from squadview.yml
// at the workspace root. Every path is relative to the workspace unless
// absolute.
type Config struct {
	SquadDir  string       `yaml:"squad_dir"`
	Logs      LogsConfig   `yaml:"logs"`
	Roster    RosterConfig `yaml:"roster"`
	Ignore    []string     `yaml:"ignore"`
	Workspace string       `yaml:"-"` // set by caller, not from config file
}

// LogsConfig names the session log directories.
type LogsConfig struct {
	StatusDir    string `yaml:"status_dir"`
	NarrativeDir string `yaml:"narrative_dir"`
}

// RosterConfig controls roster loading.
type RosterConfig struct {
	File string `yaml:"file"`
	// RetryDelay is how long to wait before the single re-read when the
	// roster file is mid-write and yields no members.
	RetryDelay Duration `yaml:"retry_delay"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SquadDir: ".squad",
		Logs: LogsConfig{
			StatusDir:    "status-log",
			NarrativeDir: "narrative-log",
		},
		Roster: RosterConfig{
			File:       "team.md",
			RetryDelay: Duration(1500 * time.Millisecond),
		},
	}
}

// Load reads configuration from the given path and sets the workspace root.
// If configPath is empty or doesn't exist, returns defaults with the
// provided workspace.
func Load(configPath, workspace string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Workspace = workspace

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set workspace since Unmarshal may have cleared it
			cfg.Workspace = workspace
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.SquadDir == "" {
		c.SquadDir = defaults.SquadDir
	}
	if c.Logs.StatusDir == "" {
		c.Logs.StatusDir = defaults.Logs.StatusDir
	}
	if c.Logs.NarrativeDir == "" {
		c.Logs.NarrativeDir = defaults.Logs.NarrativeDir
	}
	if c.Roster.File == "" {
		c.Roster.File = defaults.Roster.File
	}
	if c.Roster.RetryDelay == 0 {
		c.Roster.RetryDelay = defaults.Roster.RetryDelay
	}
}

func (c *Config) squadPath(parts ...string) string {
	elems := append([]string{c.Workspace, c.SquadDir}, parts...)
	return filepath.Join(elems...)
}

// StatusLogDir returns the status log directory path.
func (c *Config) StatusLogDir() string {
	return c.squadPath(c.Logs.StatusDir)
}

// NarrativeLogDir returns the narrative log directory path.
func (c *Config) NarrativeLogDir() string {
	return c.squadPath(c.Logs.NarrativeDir)
}

// LogDirs returns every directory scanned for session logs.
func (c *Config) LogDirs() []string {
	return []string{c.StatusLogDir(), c.NarrativeLogDir()}
}

// RosterFile returns the path to the team roster file.
func (c *Config) RosterFile() string {
	return c.squadPath(c.Roster.File)
}

// LedgerFile returns the path to the decision ledger file.
func (c *Config) LedgerFile() string {
	return c.squadPath("decisions.md")
}

// DecisionsDir returns the per-decision files directory.
func (c *Config) DecisionsDir() string {
	return c.squadPath("decisions")
}

// AgentsDir returns the directory holding per-member charter folders.
func (c *Config) AgentsDir() string {
	return c.squadPath("agents")
}
