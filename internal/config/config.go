package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig holds the defaults read from dexdb.yaml. Command-line flags
// and environment variables take precedence over every field.
type ProjectConfig struct {
	Connection     string `yaml:"connection"`
	DataDir        string `yaml:"data_dir"`
	StrictBooleans bool   `yaml:"strict_booleans"`
	Timeout        string `yaml:"timeout"`
	LogFormat      string `yaml:"log_format"`
}

const ConfigFileName = "dexdb.yaml"

func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigFileName, err)
	}
	return &cfg, nil
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c == nil || c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid timeout %q: %w", ConfigFileName, c.Timeout, err)
	}
	return d, nil
}
