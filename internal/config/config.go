package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	fsutil "github.com/kk-code-lab/asfb/internal/fs"
	"github.com/kk-code-lab/asfb/internal/launch"
	"gopkg.in/yaml.v3"
)

// HandlerConfig is one row of the extension handler table.
type HandlerConfig struct {
	Ext     string   `yaml:"ext"`     // Extension including the dot; empty for the default
	Program string   `yaml:"program"` // Program name or path
	Args    []string `yaml:"args"`    // Arguments placed before the file name
	Console bool     `yaml:"console"` // Runs on the terminal and blocks the browser
}

// Config represents the application configuration.
type Config struct {
	HideDotfiles   bool            `yaml:"hide_dotfiles"`
	FollowSymlinks bool            `yaml:"follow_symlinks"`
	MaxEntries     int             `yaml:"max_entries"`
	AutoRefresh    bool            `yaml:"auto_refresh"`
	Ignore         []string        `yaml:"ignore"`
	LogFile        string          `yaml:"log_file"`
	Handlers       []HandlerConfig `yaml:"handlers"`
}

// DefaultPath returns $XDG_CONFIG_HOME/asfb/config.yaml, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "asfb", "config.yaml"), nil
}

func defaultConfig() *Config {
	return &Config{
		MaxEntries: fsutil.DefaultCapacity,
	}
}

// Load reads the configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return defaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = fsutil.DefaultCapacity
	}
	cfg.LogFile = expandUserPath(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks handlers and ignore globs.
func (c *Config) Validate() error {
	for i, h := range c.Handlers {
		if h.Program == "" {
			return fmt.Errorf("handler %d (%q): program is required", i, h.Ext)
		}
		if h.Ext != "" && h.Ext[0] != '.' {
			return fmt.Errorf("handler %d: extension %q must start with a dot", i, h.Ext)
		}
	}
	if _, err := c.IgnoreGlobs(); err != nil {
		return err
	}
	return nil
}

// IgnoreGlobs compiles the ignore patterns.
func (c *Config) IgnoreGlobs() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Ignore))
	for _, pattern := range c.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// LoadOptions returns the listing options described by c.
func (c *Config) LoadOptions() (fsutil.LoadOptions, error) {
	globs, err := c.IgnoreGlobs()
	if err != nil {
		return fsutil.LoadOptions{}, err
	}
	return fsutil.LoadOptions{
		HideDotfiles:   c.HideDotfiles,
		FollowSymlinks: c.FollowSymlinks,
		Capacity:       c.MaxEntries,
		Ignore:         globs,
	}, nil
}

// HandlerTable returns the configured handlers, or the built-in table with
// editor as default when none are configured. A configured table without a
// default entry gets editor appended as one.
func (c *Config) HandlerTable(editor []string) launch.HandlerTable {
	if len(c.Handlers) == 0 {
		return launch.DefaultHandlers(editor)
	}
	table := make(launch.HandlerTable, 0, len(c.Handlers)+1)
	hasDefault := false
	for _, h := range c.Handlers {
		cmd := append([]string{expandUserPath(h.Program)}, h.Args...)
		table = append(table, launch.Handler{Extension: h.Ext, Command: cmd, Console: h.Console})
		if h.Ext == "" {
			hasDefault = true
		}
	}
	if !hasDefault {
		table = append(table, launch.DefaultHandlers(editor)[0])
	}
	return table
}
