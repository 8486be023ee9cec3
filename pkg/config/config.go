// pkg/config/config.go - configuration settings for devbootstrap.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default location of the tool configuration.
const ConfigPath = `C:\ProgramData\DevBootstrap\Config.yaml`

// Configuration holds the configurable options for devbootstrap in YAML form.
// Package list overrides are optional; when empty the embedded defaults from
// pkg/manifest apply.
type Configuration struct {
	StateDir        string   `yaml:"StateDir"`
	EnvFilePath     string   `yaml:"EnvFilePath"`
	RootEnvVar      string   `yaml:"RootEnvVar"`
	AutomatedEnvVar string   `yaml:"AutomatedEnvVar"`
	MinimumPython   string   `yaml:"MinimumPython"`
	PacmanPackages  []string `yaml:"PacmanPackages"`
	PipPackages     []string `yaml:"PipPackages"`
	LogLevel        string   `yaml:"LogLevel"`
	Debug           bool     `yaml:"Debug"`
	Verbose         bool     `yaml:"Verbose"`
	CheckOnly       bool     `yaml:"CheckOnly"`
}

// GetDefaultConfig provides default configuration values.
func GetDefaultConfig() *Configuration {
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	stateDir := filepath.Join(programData, "DevBootstrap")
	return &Configuration{
		StateDir:        stateDir,
		EnvFilePath:     filepath.Join(stateDir, "environment.conf"),
		RootEnvVar:      "MSYS2_ROOT",
		AutomatedEnvVar: "CI",
		MinimumPython:   "3.9",
		LogLevel:        "INFO",
	}
}

// LoadConfig loads the configuration from the default location, falling back
// to defaults when no file exists.
func LoadConfig() (*Configuration, error) {
	return LoadConfigFrom(ConfigPath)
}

// LoadConfigFrom loads the configuration from a YAML file. A missing file is
// not an error; the defaults are returned instead.
func LoadConfigFrom(path string) (*Configuration, error) {
	cfg := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
	}

	// Re-derive dependent defaults the file left empty.
	defaults := GetDefaultConfig()
	if cfg.StateDir == "" {
		cfg.StateDir = defaults.StateDir
	}
	if cfg.EnvFilePath == "" {
		cfg.EnvFilePath = filepath.Join(cfg.StateDir, "environment.conf")
	}
	if cfg.RootEnvVar == "" {
		cfg.RootEnvVar = defaults.RootEnvVar
	}
	if cfg.AutomatedEnvVar == "" {
		cfg.AutomatedEnvVar = defaults.AutomatedEnvVar
	}
	if cfg.MinimumPython == "" {
		cfg.MinimumPython = defaults.MinimumPython
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to a YAML file.
func SaveConfig(cfg *Configuration, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
