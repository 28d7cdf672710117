// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klustr/go-klustr/scene"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Width != 960 || cfg.Height != 500 {
		t.Errorf("default viewport %vx%v, want 960x500", cfg.Width, cfg.Height)
	}
	if got, want := cfg.LeaveFade(), (scene.Fade{DelayMS: 100, DurationMS: 500}); got != want {
		t.Errorf("LeaveFade = %+v, want %+v", got, want)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "klustr.yml")

	original := Default()
	original.Addr = ":9000"
	original.Width = 800
	original.Input = "data.json"
	original.AllowedOrigins = []string{"https://example.com"}
	original.LeaveDelayMS = 50
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("round trip: got %+v, want %+v", loaded, original)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "klustr.yml")
	if err := os.WriteFile(path, []byte("addr: \":7000\"\nheight: 300\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KLUSTR_ADDR", ":7001")
	t.Setenv("KLUSTR_LEAVE_DURATION_MS", "250")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":7001" {
		t.Errorf("addr %q, want env override :7001", cfg.Addr)
	}
	if cfg.Height != 300 {
		t.Errorf("height %v, want 300 from file", cfg.Height)
	}
	if cfg.LeaveDurationMS != 250 {
		t.Errorf("leave_duration_ms %d, want 250", cfg.LeaveDurationMS)
	}
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "klustr.yml")
	if err := os.WriteFile(path, []byte("addr: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load of malformed YAML succeeded")
	}
}

func TestValidate(t *testing.T) {
	for _, mod := range []func(*Config){
		func(c *Config) { c.Width = 0 },
		func(c *Config) { c.Height = -1 },
		func(c *Config) { c.Addr = "" },
		func(c *Config) { c.LeaveDelayMS = -5 },
	} {
		c := Default()
		mod(c)
		if err := c.Validate(); err == nil {
			t.Errorf("Validate accepted %+v", c)
		}
	}
}
