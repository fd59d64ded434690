// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the logscan configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level logscan configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Recovery RecoveryConfig `yaml:"recovery"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// RecoveryConfig selects how malformed entries are recovered.
type RecoveryConfig struct {
	Policy      string `yaml:"policy"`      // skip, use-value, reparse, fail
	Placeholder string `yaml:"placeholder"` // use-value text; empty keeps the original line
	ReparseSeq  int    `yaml:"reparse_seq"` // sequence number prefixed on reparse
	Warn        bool   `yaml:"warn"`        // warn before each recovery
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. Environment variables in the
// file are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Recovery.Policy == "" {
		c.Recovery.Policy = "skip"
	}
}
