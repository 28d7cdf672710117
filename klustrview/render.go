// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/klustr/go-klustr/internal/config"
	"github.com/klustr/go-klustr/scene"
	"github.com/klustr/go-klustr/widget"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a widget to an SVG file",
	Long: `Render parses a widget input, draws its initial view, replays any
clicks given with --click, and writes the resulting view as SVG.

Mark IDs are the data-mark attributes of a previously rendered SVG.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringP("input", "i", "-", "read widget input from `file`")
	f.StringP("output", "o", "", "write SVG to `file` (default: stdout)")
	f.Float64P("width", "W", 0, "viewport width (default from config)")
	f.Float64P("height", "H", 0, "viewport height (default from config)")
	f.IntSlice("click", nil, "click mark `id` after rendering (repeatable)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetFloat64("width")
	height, _ := cmd.Flags().GetFloat64("height")
	cfg, err := loadConfig(func(c *config.Config) {
		if width > 0 {
			c.Width = width
		}
		if height > 0 {
			c.Height = height
		}
	})
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("input")
	_, in, err := readInput(path)
	if err != nil {
		return err
	}

	w := widget.New(cfg.Width, cfg.Height)
	if err := w.Render(in); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	clicks, _ := cmd.Flags().GetIntSlice("click")
	for _, id := range clicks {
		if err := w.Dispatch(widget.Event{Kind: widget.Click, Mark: scene.ID(id)}); err != nil {
			return fmt.Errorf("click %d: %w", id, err)
		}
		log.Printf("click %d: now in %s view", id, w.View())
	}

	var out io.Writer = cmd.OutOrStdout()
	if name, _ := cmd.Flags().GetString("output"); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return w.WriteSVG(out)
}
