// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws the marks of each klustr view into a scene.
//
// Each entry point validates its arguments, then clears the scene and
// draws one complete view. A call that fails leaves the scene as it
// was: drawing is all-or-nothing.
package render

import (
	"math"
	"strconv"

	"github.com/klustr/go-klustr/geom"
	"github.com/klustr/go-klustr/scene"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Mark classes. A class together with a group (cluster id) addresses
// a mark group.
const (
	ClassDot         = "dot"
	ClassLegend      = "legend"
	ClassLegendLabel = "legend-label"
	ClassAxis        = "axis"
	ClassTick        = "tick"
	ClassAxisLabel   = "axis-label"
	ClassGrid        = "grid"
	ClassBar         = "bar"
	ClassThreshold   = "threshold"
	ClassTitle       = "title"
	ClassReturn      = "return"
	ClassLine        = "line"
	ClassAverage     = "average"
	ClassQuartile    = "quartile"
	ClassQuartileBar = "quartile-bar"
	ClassToggle      = "toggle"
	ClassToggleLabel = "toggle-label"
)

// Default stroke widths and opacities.
const (
	LineOpacity     = 0.5
	LineWidth       = 1
	AverageWidth    = 2
	numTicks        = 10
	tickSize        = 6
	legendSwatch    = 18
	legendRowHeight = 20
)

// begin prepares sc for a new view drawn in the plot area of l.
func begin(sc *scene.Scene, l geom.Layout) {
	sc.Clear()
	sc.Origin = scene.Point{X: l.Margins.Left, Y: l.Margins.Top}
}

// textWidth estimates the rendered width in pixels of s at the given
// font size.
func textWidth(s string, size float64) float64 {
	w := font.MeasureString(basicfont.Face7x13, s).Round()
	return float64(w) * size / float64(basicfont.Face7x13.Height)
}

// fitFont returns the largest font size no larger than size at which
// s fits in width pixels.
func fitFont(s string, size, width float64) float64 {
	w := textWidth(s, size)
	if w <= width || w == 0 {
		return size
	}
	return size * width / w
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func formatTick(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}

// bottomAxis draws a horizontal axis at y for s.
func bottomAxis(sc *scene.Scene, s geom.Linear, y float64, size float64) {
	sc.Add(scene.Mark{Kind: scene.Line, Class: ClassAxis, X: s.R0, Y: y, X2: s.R1, Y2: y, Stroke: "black"})
	for _, t := range s.Ticks(numTicks) {
		x := s.Map(t)
		sc.Add(scene.Mark{Kind: scene.Line, Class: ClassTick, X: x, Y: y, X2: x, Y2: y + tickSize, Stroke: "black"})
		sc.Add(scene.Mark{Kind: scene.Text, Class: ClassTick, X: x, Y: y + tickSize + 3 + size*0.71, Text: formatTick(t), Anchor: "middle", FontSize: size})
	}
}

// leftAxis draws a vertical axis at x for s.
func leftAxis(sc *scene.Scene, s geom.Linear, x float64, size float64, key string) {
	sc.Add(scene.Mark{Kind: scene.Line, Class: ClassAxis, Key: key, X: x, Y: s.R0, X2: x, Y2: s.R1, Stroke: "black"})
	for _, t := range s.Ticks(numTicks) {
		y := s.Map(t)
		sc.Add(scene.Mark{Kind: scene.Line, Class: ClassTick, Key: key, X: x - tickSize, Y: y, X2: x, Y2: y, Stroke: "black"})
		sc.Add(scene.Mark{Kind: scene.Text, Class: ClassTick, Key: key, X: x - tickSize - 3, Y: y + size*0.32, Text: formatTick(t), Anchor: "end", FontSize: size})
	}
}

// bandAxis draws a horizontal axis at y labelling the bands of b.
func bandAxis(sc *scene.Scene, b geom.Band, width, y, size float64) {
	sc.Add(scene.Mark{Kind: scene.Line, Class: ClassAxis, X: 0, Y: y, X2: width, Y2: y, Stroke: "black"})
	for i, d := range b.Domain {
		x := b.At(i) + b.Bandwidth()/2
		sc.Add(scene.Mark{Kind: scene.Line, Class: ClassTick, Key: d, X: x, Y: y, X2: x, Y2: y + tickSize, Stroke: "black"})
		sc.Add(scene.Mark{Kind: scene.Text, Class: ClassTick, Key: d, X: x, Y: y + tickSize + 3 + size*0.71, Text: d, Anchor: "middle", FontSize: size})
	}
}

// hGrid draws a horizontal gridline at each tick of s.
func hGrid(sc *scene.Scene, s geom.Linear, width float64) {
	for _, t := range s.Ticks(numTicks) {
		y := s.Map(t)
		sc.Add(scene.Mark{Kind: scene.Line, Class: ClassGrid, X: 0, Y: y, X2: width, Y2: y, Stroke: "lightgrey"})
	}
}

// vGrid draws a vertical gridline at each tick of s.
func vGrid(sc *scene.Scene, s geom.Linear, height float64) {
	for _, t := range s.Ticks(numTicks) {
		x := s.Map(t)
		sc.Add(scene.Mark{Kind: scene.Line, Class: ClassGrid, X: x, Y: 0, X2: x, Y2: height, Stroke: "lightgrey"})
	}
}
