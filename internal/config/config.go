// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads klustrview's configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/klustr/go-klustr/scene"
)

// EnvPrefix prefixes the environment variables that override the
// configuration file, as in KLUSTR_ADDR or KLUSTR_WIDTH.
const EnvPrefix = "KLUSTR_"

// Config is the klustrview configuration, corresponding to klustr.yml.
type Config struct {
	// Addr is the listen address of the interactive server.
	Addr string `yaml:"addr" koanf:"addr"`

	// Width and Height are the default viewport size in pixels.
	Width  float64 `yaml:"width" koanf:"width"`
	Height float64 `yaml:"height" koanf:"height"`

	// Input is a JSON data file rendered when a session starts.
	Input string `yaml:"input" koanf:"input"`

	// Metrics enables the /metrics endpoint.
	Metrics bool `yaml:"metrics" koanf:"metrics"`

	// AllowedOrigins are the CORS and websocket origins accepted
	// by the server. Empty means same-origin only.
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`

	// LeaveDelayMS and LeaveDurationMS time the fade back after the
	// pointer leaves a mark.
	LeaveDelayMS    int `yaml:"leave_delay_ms" koanf:"leave_delay_ms"`
	LeaveDurationMS int `yaml:"leave_duration_ms" koanf:"leave_duration_ms"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Addr:            "localhost:8080",
		Width:           960,
		Height:          500,
		Metrics:         true,
		LeaveDelayMS:    100,
		LeaveDurationMS: 500,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (KLUSTR_*). A missing file is not an
// error; path may be empty to skip the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// KLUSTR_LEAVE_DELAY_MS -> leave_delay_ms, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes c to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that c contains usable values.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport %vx%v must be positive", c.Width, c.Height)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.LeaveDelayMS < 0 || c.LeaveDurationMS < 0 {
		return fmt.Errorf("leave fade timings must be non-negative")
	}
	return nil
}

// LeaveFade returns the hover-leave fade described by c.
func (c *Config) LeaveFade() scene.Fade {
	return scene.Fade{DelayMS: c.LeaveDelayMS, DurationMS: c.LeaveDurationMS}
}
