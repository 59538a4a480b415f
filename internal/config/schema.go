package config

import "time"

// Config represents the full client configuration
type Config struct {
	// Base URL of the task API
	APIURL string `yaml:"api_url" mapstructure:"api_url"`

	// Per-request timeout
	Timeout time.Duration `yaml:"-" mapstructure:"timeout"`

	// Logging configuration
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// LogConfig configures the logrus logger
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// MarshalYAML renders the timeout as a duration string rather than nanoseconds.
func (c Config) MarshalYAML() (interface{}, error) {
	return struct {
		APIURL  string    `yaml:"api_url"`
		Timeout string    `yaml:"timeout"`
		Log     LogConfig `yaml:"log"`
	}{
		APIURL:  c.APIURL,
		Timeout: c.Timeout.String(),
		Log:     c.Log,
	}, nil
}
