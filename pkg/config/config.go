package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is read from the working directory when no other config is named.
	DefaultConfigFile = ".codeprompt.yaml"

	// EnvConfigFile names a config file when --config is not given.
	EnvConfigFile = "CODEPROMPT_CONFIG"
)

// Config holds the file locations and logging options of a run.
type Config struct {
	// IgnoreFile holds one ignore rule per line for bulk mode.
	IgnoreFile string `yaml:"ignore_file"`

	// SelectionFile is the primary individual-mode list, rewritten after every run.
	SelectionFile string `yaml:"selection_file"`

	// LegacySelectionFile is consulted only when SelectionFile is absent or empty.
	LegacySelectionFile string `yaml:"legacy_selection_file"`

	// OutputFile receives the rendered prompt.
	OutputFile string `yaml:"output_file"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Debug switches to the development logger at debug level.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a Config with the file names used by earlier releases.
func DefaultConfig() *Config {
	return &Config{
		IgnoreFile:          "ignore_paths.txt",
		SelectionFile:       "target_files.txt",
		LegacySelectionFile: "individual_files.sh",
		OutputFile:          "codebase_prompt.txt",
		LogLevel:            "warn",
		Debug:               false,
	}
}

// LoadConfig reads a YAML config file and overlays its non-empty fields on the
// defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var yamlCfg Config
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if yamlCfg.IgnoreFile != "" {
		cfg.IgnoreFile = yamlCfg.IgnoreFile
	}
	if yamlCfg.SelectionFile != "" {
		cfg.SelectionFile = yamlCfg.SelectionFile
	}
	if yamlCfg.LegacySelectionFile != "" {
		cfg.LegacySelectionFile = yamlCfg.LegacySelectionFile
	}
	if yamlCfg.OutputFile != "" {
		cfg.OutputFile = yamlCfg.OutputFile
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Debug {
		cfg.Debug = yamlCfg.Debug
	}

	return cfg, nil
}

// Resolve picks the config file to load: an explicit path must exist, the
// environment variable and the default file are optional.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file %s: %w", explicit, err)
		}
		return LoadConfig(explicit)
	}
	if env := os.Getenv(EnvConfigFile); env != "" {
		return LoadConfig(env)
	}
	return LoadConfig(DefaultConfigFile)
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"ignore_file", c.IgnoreFile},
		{"selection_file", c.SelectionFile},
		{"legacy_selection_file", c.LegacySelectionFile},
		{"output_file", c.OutputFile},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s must not be empty", f.name)
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	// each file is rewritten by a different step of a run
	for i, a := range fields {
		for _, b := range fields[i+1:] {
			if filepath.Clean(a.value) == filepath.Clean(b.value) {
				return fmt.Errorf("%s and %s must differ, both are %q", a.name, b.name, a.value)
			}
		}
	}
	return nil
}
