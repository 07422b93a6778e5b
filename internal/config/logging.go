package config

import "strings"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// IsJSON reports whether structured JSON output was requested.
func (c LoggingConfig) IsJSON() bool {
	return strings.EqualFold(c.Format, "json")
}
