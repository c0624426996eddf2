package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	url := strings.TrimSpace(c.URL)
	if url == "" {
		return errors.New("url is required")
	}
	if !strings.HasSuffix(url, "/all") && !strings.HasSuffix(url, "/all/") {
		return fmt.Errorf("url must end with '/all' or '/all/', got %q", url)
	}

	if c.IntervalSeconds <= 0 {
		return fmt.Errorf("interval_seconds must be > 0, got %d", c.IntervalSeconds)
	}

	if strings.TrimSpace(c.OutputFile) == "" {
		return errors.New("output_file is required")
	}

	if c.LoadTimeout < 0 {
		return errors.New("load_timeout must be >= 0")
	}
	if c.WaitTimeout < 0 {
		return errors.New("wait_timeout must be >= 0")
	}

	return nil
}
