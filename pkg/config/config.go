package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anrid/popu-ranking/pkg/stats"
	"gopkg.in/yaml.v3"
)

// InputEnv overrides the input path when set.
const InputEnv = "POPU_RANKING_INPUT"

// Config holds the settings of a ranking run.
type Config struct {
	Input     string      `yaml:"input"`
	Years     stats.Years `yaml:"years"`
	Delimiter string      `yaml:"delimiter"`
	Encoding  string      `yaml:"encoding"`
	Format    string      `yaml:"format"`
	Label     string      `yaml:"label"`
}

func DefaultConfig() *Config {
	return &Config{
		Input:     "./popu-pref.csv",
		Years:     stats.DefaultYears,
		Delimiter: ",",
		Encoding:  "utf-8",
		Format:    stats.FormatList,
		Label:     stats.DefaultLabel,
	}
}

// Load reads a YAML config on top of the defaults. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(InputEnv); v != "" {
		c.Input = v
	}
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input given")
	}
	if err := c.Years.Validate(); err != nil {
		return err
	}
	if c.Delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	if !stats.IsEncoding(c.Encoding) {
		return fmt.Errorf("unsupported encoding '%s'", c.Encoding)
	}
	if !stats.IsFormat(c.Format) {
		return fmt.Errorf("unsupported format '%s', want one of %s", c.Format, strings.Join(stats.Formats, ", "))
	}
	return nil
}

// Options returns the source options for this config.
func (c *Config) Options() stats.Options {
	return stats.Options{Delimiter: c.Delimiter, Encoding: c.Encoding}
}
