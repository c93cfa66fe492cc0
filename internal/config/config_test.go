package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("auto_detect: true\n"), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.True(t, cfg.AutoDetect)
	assert.Equal(t, []string{".env"}, cfg.EnvFiles)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_NullEnvFilesKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("env_files:\nlog_level: info\n"), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{".env"}, cfg.EnvFiles)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("env_files: {\n"), 0644))

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestWriteTemplate(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTemplate(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	// The template must parse back to the defaults
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = WriteTemplate(dir)
	assert.ErrorContains(t, err, "already exists")
}
