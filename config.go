package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"stickies/internal/storage"
)

const (
	configDir  = ".config/stickies"
	configFile = "config.yaml"
)

type Config struct {
	// StorePath is where the board is kept. The backend is picked from the
	// extension unless Backend says otherwise.
	StorePath       string `yaml:"store_path"`
	Backend         string `yaml:"backend"`
	Confirmations   bool   `yaml:"confirmations"`
	ExportDirectory string `yaml:"export_directory"`
	LogFile         string `yaml:"log_file"`
}

func defaultConfig() *Config {
	return &Config{
		StorePath:     filepath.Join(configHome(), "board.json"),
		Backend:       storage.BackendAuto,
		Confirmations: true,
	}
}

func configHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, configDir)
}

func defaultConfigPath() string {
	return filepath.Join(configHome(), configFile)
}

// loadConfig reads the YAML config at path over the defaults. A missing
// file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		path = defaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	config.StorePath = expandPath(config.StorePath)
	config.ExportDirectory = expandPath(config.ExportDirectory)
	config.LogFile = expandPath(config.LogFile)

	switch config.Backend {
	case "":
		config.Backend = storage.BackendAuto
	case storage.BackendAuto, storage.BackendJSON, storage.BackendSQLite:
	default:
		return nil, fmt.Errorf("config %s: unknown backend %q", path, config.Backend)
	}
	if config.StorePath == "" {
		config.StorePath = defaultConfig().StorePath
	}
	return config, nil
}

// GetExportPath places filename in ExportDirectory when one is set,
// creating the directory.
func (c *Config) GetExportPath(filename string) (string, error) {
	if c.ExportDirectory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDirectory, 0755); err != nil {
		return "", fmt.Errorf("export directory: %w", err)
	}
	return filepath.Join(c.ExportDirectory, filename), nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return path
}
