// Package config handles litmerge's global configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/litmerge/config.yml.
// LITMERGE_* environment variables override file values.
type Config struct {
	OutputDir string `yaml:"output_dir,omitempty" json:"output_dir,omitempty" env:"LITMERGE_OUTPUT_DIR" env-description:"directory for output files (default ./output_format)"`
	JSONL     bool   `yaml:"jsonl" json:"jsonl" env:"LITMERGE_JSONL" env-description:"also write a JSONL export"`
	SQLite    bool   `yaml:"sqlite" json:"sqlite" env:"LITMERGE_SQLITE" env-description:"also write a SQLite export"`
	BibTeX    bool   `yaml:"bibtex" json:"bibtex" env:"LITMERGE_BIBTEX" env-description:"also write unique records as BibTeX"`
	LogLevel  string `yaml:"log_level" json:"log_level" env:"LITMERGE_LOG_LEVEL" env-default:"info" env-description:"console log level"`
	NoColor   bool   `yaml:"no_color" json:"no_color" env:"LITMERGE_NO_COLOR" env-description:"disable colored console output"`
}

const (
	// AppName is the directory name under XDG_CONFIG_HOME.
	AppName = "litmerge"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DefaultOutputDir is created in the working directory when no output
	// directory is configured.
	DefaultOutputDir = "output_format"
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "LITMERGE_CONFIG"
)

// ErrInvalidConfig is returned when a loaded value is not usable.
var ErrInvalidConfig = errors.New("invalid configuration")

// Path returns the path to the config file. Respects LITMERGE_CONFIG, then
// XDG_CONFIG_HOME, defaulting to ~/.config/litmerge/config.yml.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFile)
}

// Load reads the config file if it exists and applies environment
// overrides. A missing file at the default location is not an error; a
// missing file named by LITMERGE_CONFIG is.
func Load() (*Config, error) {
	var cfg Config

	path := Path()
	explicit := os.Getenv(EnvConfigPath) != ""

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading config from environment: %w", err)
	}

	cfg.OutputDir = ExpandPath(cfg.OutputDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cleanenv cannot type-check.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// ResolveOutputDir returns the configured output directory, or
// DefaultOutputDir under cwd when none is set.
func (c *Config) ResolveOutputDir(cwd string) string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Join(cwd, DefaultOutputDir)
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Usage describes the environment variables Load understands.
func Usage() (string, error) {
	return cleanenv.GetDescription(&Config{}, nil)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
