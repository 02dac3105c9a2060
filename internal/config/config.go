package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// InstanceConfig represents a pre-configured Jenkins instance in the config file.
type InstanceConfig struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// Config holds the serve configuration (CLI flags + config file).
type Config struct {
	Listen      string           `yaml:"listen"`
	LogLevel    string           `yaml:"log_level"`    // debug, info, warn, error
	CapturesDir string           `yaml:"captures_dir"` // scans are confined to this directory; unset disables them
	Instances   []InstanceConfig `yaml:"instances"`

	// internal: path to config file (from CLI flag)
	configFile string
}

// RegisterFlags adds the serve flags to fs. Flags left empty fall back to
// the config file, then to defaults.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.configFile, "config", "c", "", "Path to config file (YAML)")
	fs.StringVar(&c.Listen, "listen", "", "HTTP listen address (default \":8080\")")
	fs.StringVar(&c.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default \"info\")")
	fs.StringVar(&c.CapturesDir, "captures-dir", "", "Directory scans are restricted to (scans are disabled without it)")
}

// Parse reads the serve flags from args, then overlays config file values.
// CLI flags take precedence over config file values.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load applies the config file named by the --config flag, if any, and the
// defaults for anything still unset.
func (c *Config) Load() error {
	if c.configFile != "" {
		if err := c.loadFile(c.configFile); err != nil {
			return err
		}
	}

	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if os.Getenv("WORKBENCH_DEBUG") != "" {
		c.LogLevel = "debug"
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	for i, inst := range c.Instances {
		if inst.URL == "" {
			return fmt.Errorf("instances[%d] (%s): url is required", i, inst.Name)
		}
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// loadFile reads a YAML config file. Values from the file are only applied
// if the corresponding CLI flag was not explicitly set.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if c.Listen == "" {
		c.Listen = file.Listen
	}
	if c.LogLevel == "" {
		c.LogLevel = file.LogLevel
	}
	if c.CapturesDir == "" {
		c.CapturesDir = file.CapturesDir
	}

	// Instances always come from config file
	c.Instances = file.Instances

	return nil
}
