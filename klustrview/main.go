// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command klustrview renders klustr cluster widgets.
//
// klustrview takes the JSON input of a projection widget (a "PC"
// field) or a parallel-coordinates widget (a "data" field) and either
// renders it to a static SVG file or serves it as an interactive page.
//
//	klustrview render -i pca.json -o pca.svg
//	klustrview render -i pca.json --click 12 -o drilled.svg
//	klustrview serve -i paco.json --addr :8080
//
// Configuration is read from klustr.yml (see --config) and overridden
// by KLUSTR_* environment variables, then by flags.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/klustr/go-klustr/dataset"
	"github.com/klustr/go-klustr/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "klustrview",
	Short: "Render klustr cluster visualization widgets",
	Long: `klustrview draws the projection scatter plot, contribution bar chart,
and parallel coordinates views of a clustering, either as a static SVG
or as a live page driven over a websocket.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "klustr.yml", "config `file` path")
}

func main() {
	log.SetPrefix("klustrview: ")
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads and validates the configuration, applying any
// flag overrides.
func loadConfig(override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// readInput reads and parses the widget input at path. "-" is stdin.
func readInput(path string) ([]byte, *dataset.Input, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, nil, err
	}
	in, err := dataset.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, in, nil
}
