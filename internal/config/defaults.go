package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultIntervalSeconds = 30
	DefaultOutputFile      = "scraped_data.json"
	DefaultLoadTimeout     = 30 * time.Second
	DefaultWaitTimeout     = 5 * time.Second
)

// Default returns a config with every optional field set.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = DefaultIntervalSeconds
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.LoadTimeout == 0 {
		c.LoadTimeout = DefaultLoadTimeout
	}
	if c.WaitTimeout == 0 {
		c.WaitTimeout = DefaultWaitTimeout
	}
}
