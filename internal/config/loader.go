package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds optional file-backed settings for checkctl.
// Zero values mean "unspecified" and keep the CLI defaults.
type Config struct {
	DaemonURL     string `json:"daemon_url" yaml:"daemon_url" toml:"daemon_url"`
	Model         string `json:"model" yaml:"model" toml:"model"`
	VenvName      string `json:"venv_name" yaml:"venv_name" toml:"venv_name"`
	PythonVersion string `json:"python_version" yaml:"python_version" toml:"python_version"`
	Requirements  string `json:"requirements" yaml:"requirements" toml:"requirements"`
	PIDFile       string `json:"pid_file" yaml:"pid_file" toml:"pid_file"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// FindDefault returns the first checkctl config file present in dir, or ""
// when none exists.
func FindDefault(dir string) string {
	for _, name := range []string{"checkctl.yaml", "checkctl.yml", "checkctl.json", "checkctl.toml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
