package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// A settings file is the YAML form of Config. ${VAR} references are expanded
// when it is read; Save writes literal values, so a saved file reads back as
// the same Config.

// Load reads the settings file at path as written, without defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	cfg, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return cfg, nil
}

// LoadWithDefaults is Load with every unset field taken from Default.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate returns the settings a run can start from, or the first
// field that makes them unusable.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: invalid: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, replacing the file. It is the inverse of
// LoadWithDefaults for a Config that already carries its defaults.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("settings %s: encode: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings %s: %w", path, err)
	}
	return nil
}

func decode(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("malformed yaml: %w", err)
	}
	return &cfg, nil
}
