package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "lootsweep.yaml"

// Config holds all lootsweep configuration.
type Config struct {
	// Local client API
	Client ClientConfig `yaml:"client"`

	// Run behavior
	Run RunConfig `yaml:"run"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ClientConfig configures how the local client is found and reached.
type ClientConfig struct {
	// Candidate install directories probed for the lockfile, in order.
	Paths          []string `yaml:"paths"`
	LockfileName   string   `yaml:"lockfile_name"`
	Host           string   `yaml:"host"`
	Username       string   `yaml:"username"`
	RequestTimeout string   `yaml:"request_timeout"`
}

// RunConfig configures a single disenchant run.
type RunConfig struct {
	// Display names never disenchanted (case-insensitive).
	Exclude   []string `yaml:"exclude"`
	AssumeYes bool     `yaml:"assume_yes"`
	Timeout   string   `yaml:"timeout"`
}

// envOverrides lists the environment variables honored on top of the file.
type envOverrides struct {
	Paths          []string `env:"LOOTSWEEP_PATHS" envSeparator:";"`
	Host           string   `env:"LOOTSWEEP_HOST"`
	RequestTimeout string   `env:"LOOTSWEEP_REQUEST_TIMEOUT"`
	Timeout        string   `env:"LOOTSWEEP_TIMEOUT"`
	Exclude        []string `env:"LOOTSWEEP_EXCLUDE" envSeparator:","`
	LogLevel       string   `env:"LOOTSWEEP_LOG_LEVEL"`
	LogFormat      string   `env:"LOOTSWEEP_LOG_FORMAT"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			Paths: []string{
				`C:\Program Files\League of Legends`,
				`C:\Jeux\League of Legends`,
				`C:\Riot Games\League of Legends`,
				"/Applications/League of Legends.app/Contents/LoL",
			},
			LockfileName:   "lockfile",
			Host:           "127.0.0.1",
			Username:       "riot",
			RequestTimeout: "30s",
		},
		Run: RunConfig{
			Timeout: "5m",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if len(o.Paths) > 0 {
		c.Client.Paths = trimAll(o.Paths)
	}
	if o.Host != "" {
		c.Client.Host = o.Host
	}
	if o.RequestTimeout != "" {
		c.Client.RequestTimeout = o.RequestTimeout
	}
	if o.Timeout != "" {
		c.Run.Timeout = o.Timeout
	}
	if len(o.Exclude) > 0 {
		c.Run.Exclude = trimAll(o.Exclude)
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	return nil
}

// GetRequestTimeout returns the per-request timeout as a duration.
func (c *Config) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Client.RequestTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GetRunTimeout returns the overall run timeout as a duration.
func (c *Config) GetRunTimeout() time.Duration {
	d, err := time.ParseDuration(c.Run.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Client.Paths) == 0 {
		return fmt.Errorf("no client paths configured (set client.paths, LOOTSWEEP_PATHS or --path)")
	}
	if c.Client.Host == "" {
		return fmt.Errorf("client host must not be empty")
	}
	if c.Client.RequestTimeout != "" {
		if _, err := time.ParseDuration(c.Client.RequestTimeout); err != nil {
			return fmt.Errorf("invalid client request_timeout %q: %w", c.Client.RequestTimeout, err)
		}
	}
	if c.Run.Timeout != "" {
		if _, err := time.ParseDuration(c.Run.Timeout); err != nil {
			return fmt.Errorf("invalid run timeout %q: %w", c.Run.Timeout, err)
		}
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if strings.EqualFold(c.Logging.Level, l) {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
