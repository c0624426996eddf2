package config

import "time"

// Config holds the settings of one scraping session.
type Config struct {
	URL             string        `yaml:"url"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	OutputFile      string        `yaml:"output_file"`
	LoadTimeout     time.Duration `yaml:"load_timeout"`
	WaitTimeout     time.Duration `yaml:"wait_timeout"`
	MetricsAddr     string        `yaml:"metrics_addr,omitempty"`
}

// Interval returns the polling interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}
