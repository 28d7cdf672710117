// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selection turns pointer events into highlight levels and
// applies them to the marks of a scene.
//
// A Controller owns the highlight state of one class of marks in one
// view. Click state is kept per mark group (cluster id) and survives
// re-rendering: after a new scene is drawn, Restore reapplies it.
// Hover state addresses a single mark. For points, hovering dims every
// other mark and leaving returns every group to Normal, discarding the
// click state. For lines, hovering only thickens the hovered line.
//
// Controllers are driven from a single event loop and are not safe
// for concurrent use.
package selection

import (
	"sort"

	"github.com/klustr/go-klustr/scene"
)

// Level is the highlight level of a mark group.
type Level int

const (
	Normal Level = iota
	Dimmed
	Emphasized
)

func (l Level) String() string {
	switch l {
	case Normal:
		return "normal"
	case Dimmed:
		return "dimmed"
	case Emphasized:
		return "emphasized"
	}
	return "unknown"
}

// Style gives the appearance of each level.
type Style struct {
	// Baseline is the opacity of Normal marks.
	Baseline float64

	// Dimmed is the opacity of Dimmed marks. Emphasized marks are
	// fully opaque.
	Dimmed float64

	// StrokeWidth, EmphasizedStrokeWidth, and HoverStrokeWidth
	// are the stroke widths of normal, emphasized, and hovered
	// marks. If StrokeWidth is 0, strokes are left alone.
	StrokeWidth, EmphasizedStrokeWidth, HoverStrokeWidth float64

	// HoverStrokeOnly limits hover to the stroke of the hovered
	// mark. Peers keep their levels and leaving keeps the click
	// state.
	HoverStrokeOnly bool
}

// Styles of point and line marks. Lines overlap heavily, so their
// baseline is half transparent.
var (
	PointStyle = Style{Baseline: 1, Dimmed: 0.1}
	LineStyle  = Style{Baseline: 0.5, Dimmed: 0.1, StrokeWidth: 1, EmphasizedStrokeWidth: 2, HoverStrokeWidth: 5, HoverStrokeOnly: true}
)

// Fades of the visual transitions. Hover-leave fades back after a
// delay so moving quickly across adjacent marks doesn't flicker.
var (
	HoverFade = scene.Fade{DurationMS: 200}
	LeaveFade = scene.Fade{DelayMS: 100, DurationMS: 500}
	ClickFade = scene.Fade{DurationMS: 250}
)

// A Controller holds the highlight state of the marks of one class.
type Controller struct {
	class string
	style Style

	// emphasized is the set of emphasized groups. If it is empty,
	// every group is Normal; otherwise every group not in it is
	// Dimmed.
	emphasized map[string]bool

	// hovered is the mark under the pointer, or 0.
	hovered scene.ID

	// Leave is the fade used when the pointer leaves a mark.
	Leave scene.Fade
}

// New returns a Controller for marks of the given class.
func New(class string, style Style) *Controller {
	return &Controller{class: class, style: style, emphasized: make(map[string]bool), Leave: LeaveFade}
}

// Class returns the mark class c controls.
func (c *Controller) Class() string {
	return c.class
}

// Level returns the recorded level of group g.
func (c *Controller) Level(g string) Level {
	switch {
	case len(c.emphasized) == 0:
		return Normal
	case c.emphasized[g]:
		return Emphasized
	}
	return Dimmed
}

// Emphasized returns the emphasized groups in sorted order.
func (c *Controller) Emphasized() []string {
	out := make([]string, 0, len(c.emphasized))
	for g := range c.emphasized {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Hovered returns the mark under the pointer, or 0.
func (c *Controller) Hovered() scene.ID {
	return c.hovered
}

// Reset returns every group to Normal and forgets any hover.
func (c *Controller) Reset() {
	c.emphasized = make(map[string]bool)
	c.hovered = 0
}

// Click toggles group g.
//
// Clicking a group that is not emphasized emphasizes it and dims
// every group that is not already emphasized, so successive clicks
// emphasize the union of the clicked groups. Clicking an emphasized
// group dims it, unless it was the last emphasized group, in which
// case every group returns to Normal.
func (c *Controller) Click(sc *scene.Scene, g string) {
	if c.emphasized[g] {
		delete(c.emphasized, g)
	} else {
		c.emphasized[g] = true
	}
	c.apply(sc, ClickFade)
}

// HoverEnter emphasizes mark id and dims every other mark of c's
// class, or only widens the stroke of mark id if the style is
// HoverStrokeOnly. The recorded group levels are unchanged.
func (c *Controller) HoverEnter(sc *scene.Scene, id scene.ID) {
	c.hovered = id
	if c.style.HoverStrokeOnly {
		if m := sc.Mark(id); m != nil && m.Class == c.class {
			m.StrokeWidth = c.style.HoverStrokeWidth
		}
		return
	}
	for _, m := range sc.Class(c.class) {
		if m.ID == id {
			c.style.paint(m, Emphasized, true, scene.Fade{})
		} else {
			c.style.paint(m, Dimmed, false, HoverFade)
		}
	}
}

// HoverLeave ends a hover. Every group returns to Normal with a
// delayed fade and the click state is cleared, so the next click
// starts a fresh selection. With HoverStrokeOnly only the hovered
// mark's stroke is restored.
func (c *Controller) HoverLeave(sc *scene.Scene) {
	if c.style.HoverStrokeOnly {
		if m := sc.Mark(c.hovered); m != nil && m.Class == c.class {
			c.style.paint(m, c.Level(m.Group), false, m.Fade)
		}
		c.hovered = 0
		return
	}
	c.Reset()
	c.apply(sc, c.Leave)
}

// Restore applies the recorded levels to a freshly drawn scene
// without any fade. Any hover is forgotten, since the hovered mark
// no longer exists.
func (c *Controller) Restore(sc *scene.Scene) {
	c.hovered = 0
	c.apply(sc, scene.Fade{})
}

func (c *Controller) apply(sc *scene.Scene, fade scene.Fade) {
	for _, m := range sc.Class(c.class) {
		c.style.paint(m, c.Level(m.Group), false, fade)
	}
}

// paint sets the appearance of m for level l.
func (s Style) paint(m *scene.Mark, l Level, hover bool, fade scene.Fade) {
	switch l {
	case Normal:
		m.Opacity = s.Baseline
	case Dimmed:
		m.Opacity = s.Dimmed
	case Emphasized:
		m.Opacity = 1
	}
	m.Fade = fade
	if s.StrokeWidth == 0 {
		return
	}
	switch {
	case hover:
		m.StrokeWidth = s.HoverStrokeWidth
	case l == Emphasized:
		m.StrokeWidth = s.EmphasizedStrokeWidth
	default:
		m.StrokeWidth = s.StrokeWidth
	}
}
