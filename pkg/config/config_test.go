package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "ignore_paths.txt", cfg.IgnoreFile)
	assert.Equal(t, "target_files.txt", cfg.SelectionFile)
	assert.Equal(t, "individual_files.sh", cfg.LegacySelectionFile)
	assert.Equal(t, "codebase_prompt.txt", cfg.OutputFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeprompt.yaml")
	content := `output_file: out/prompt.txt
log_level: debug
debug: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "out/prompt.txt", cfg.OutputFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Debug)
	// untouched fields keep their defaults
	assert.Equal(t, "ignore_paths.txt", cfg.IgnoreFile)
	assert.Equal(t, "target_files.txt", cfg.SelectionFile)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeprompt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_file: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestResolveExplicitMissing(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ignore_file: rules.txt\n"), 0644))
	t.Setenv(EnvConfigFile, path)

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "rules.txt", cfg.IgnoreFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty output", func(c *Config) { c.OutputFile = " " }, "output_file must not be empty"},
		{"empty ignore file", func(c *Config) { c.IgnoreFile = "" }, "ignore_file must not be empty"},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, "invalid log_level"},
		{"same lists", func(c *Config) { c.LegacySelectionFile = c.SelectionFile }, "selection_file and legacy_selection_file must differ"},
		{"output is selection list", func(c *Config) { c.OutputFile = c.SelectionFile }, "selection_file and output_file must differ"},
		{"output is legacy list", func(c *Config) { c.OutputFile = c.LegacySelectionFile }, "legacy_selection_file and output_file must differ"},
		{"output is ignore file", func(c *Config) { c.OutputFile = "./" + c.IgnoreFile }, "ignore_file and output_file must differ"},
		{"ignore file is selection list", func(c *Config) { c.IgnoreFile = c.SelectionFile }, "ignore_file and selection_file must differ"},
		{"distinct paths", func(c *Config) { c.OutputFile = "out/prompt.txt" }, ""},
		{"upper-case level", func(c *Config) { c.LogLevel = "INFO" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
