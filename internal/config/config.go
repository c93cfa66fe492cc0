package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory
const FileName = ".credcheck.yaml"

// Config represents the credcheck configuration file
type Config struct {
	EnvFiles   []string `yaml:"env_files"`   // Env files loaded in order, later ones override earlier ones
	AutoDetect bool     `yaml:"auto_detect"` // Also pick up .env.*, .envrc, compose and k8s files
	LogLevel   string   `yaml:"log_level"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		EnvFiles: []string{".env"},
		LogLevel: "warn",
	}
}

// LoadConfig loads the config file from the specified directory.
// Keys missing from the file keep their default values.
func LoadConfig(rootPath string) (*Config, error) {
	configPath := filepath.Join(rootPath, FileName)

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	// A bare "env_files:" decodes as null
	if config.EnvFiles == nil {
		config.EnvFiles = Default().EnvFiles
	}

	return config, nil
}

// Template is written by init-config
const Template = `# .credcheck.yaml
# Configuration file for credcheck

# Env files loaded in order. Later files override earlier ones,
# variables already set in the environment are never overridden.
env_files:
  - .env
  # - .env.local

# Also read .env.*, .envrc, docker-compose and Kubernetes Secret/ConfigMap
# files found in the current directory
auto_detect: false

# debug, info, warn or error (logs go to stderr)
log_level: warn
`

// WriteTemplate creates the config file in rootPath. It refuses to
// overwrite an existing file.
func WriteTemplate(rootPath string) (string, error) {
	configPath := filepath.Join(rootPath, FileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("%s already exists in %s", FileName, rootPath)
	}

	if err := os.WriteFile(configPath, []byte(Template), 0644); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", FileName, err)
	}
	return configPath, nil
}
