// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene is a retained tree of visual marks.
//
// A Scene holds the marks of exactly one drawn view. Marks are
// indexed at draw time by class and by group (usually a cluster id),
// so highlight changes address a mark group with a map lookup rather
// than by re-matching attributes.
package scene

import "fmt"

// An ID identifies a mark within one Scene. IDs are assigned in draw
// order starting at 1, so drawing the same view twice yields the same
// IDs.
type ID int

// Kind is the geometric primitive of a mark.
type Kind int

const (
	Circle Kind = iota
	Rect
	Line
	Polyline
	Ellipse
	Text
)

var kindNames = [...]string{"circle", "rect", "line", "polyline", "ellipse", "text"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Action is what a pointer event on a mark means to the widget.
type Action int

const (
	// NoAction marks are inert.
	NoAction Action = iota

	// Hover marks dim their peers while the pointer is over them.
	Hover

	// ToggleGroup marks toggle the emphasis of their group when
	// clicked. Legend swatches and polylines are ToggleGroup
	// marks.
	ToggleGroup

	// DrillDown marks switch to the contribution view of the
	// component named by Mark.Key.
	DrillDown

	// Return marks switch back from a drill-down.
	Return

	// ToggleAggregate marks swap individual and aggregate marks.
	ToggleAggregate
)

// Point is a point in plot-area pixel coordinates.
type Point struct {
	X, Y float64
}

// Fade is a visual-only opacity transition. It never gates program
// logic: a mark's Opacity is its new value as soon as it is set, and
// the fade only tells the display how to get there.
type Fade struct {
	DelayMS, DurationMS int
}

// A Mark is one drawn visual element.
type Mark struct {
	ID   ID
	Kind Kind

	// Class names the role of the mark ("dot", "legend", "bar",
	// "line", "average", ...). Group is its selection identity,
	// usually a cluster id. Key is role-specific: the row label
	// of an observation, the dimension of an axis, or the
	// component of a drill-down label.
	Class, Group, Key string

	// Geometry. Circle uses X, Y, R. Rect uses X, Y, W, H. Line
	// uses X, Y, X2, Y2. Ellipse uses X, Y, W (rx), H (ry).
	// Polyline uses Points. Text uses X, Y, and Rotate.
	X, Y, X2, Y2 float64
	W, H, R      float64
	Points       []Point
	Rotate       float64

	// Style.
	Fill, Stroke string
	StrokeWidth  float64
	Dash         string
	Opacity      float64
	Fade         Fade
	Hidden       bool
	Text         string
	Anchor       string
	FontSize     float64
	Bold         bool
	Underline    bool

	// Title is shown as a tooltip.
	Title string

	Action Action
}

type groupKey struct {
	class, group string
}

// A Scene is the set of marks of one drawn view.
//
// All marks are drawn inside a plot area offset from the viewport
// origin by Origin.
type Scene struct {
	Width, Height float64
	Origin        Point

	marks   []*Mark
	byClass map[string][]*Mark
	byGroup map[groupKey][]*Mark
}

// New returns an empty scene for a width x height viewport.
func New(width, height float64) *Scene {
	s := &Scene{Width: width, Height: height}
	s.Clear()
	return s
}

// Clear removes all marks from s. Mark IDs restart at 1.
func (s *Scene) Clear() {
	s.marks = nil
	s.byClass = make(map[string][]*Mark)
	s.byGroup = make(map[groupKey][]*Mark)
}

// Add adds m to s, assigns its ID, and indexes it. Marks with no
// explicit opacity are fully opaque; use AddTransparent for marks
// that start invisible.
func (s *Scene) Add(m Mark) *Mark {
	if m.Opacity == 0 {
		m.Opacity = 1
	}
	return s.add(m)
}

// AddTransparent is like Add, but keeps an opacity of 0.
func (s *Scene) AddTransparent(m Mark) *Mark {
	m.Opacity = 0
	return s.add(m)
}

func (s *Scene) add(m Mark) *Mark {
	mp := &m
	mp.ID = ID(len(s.marks) + 1)
	s.marks = append(s.marks, mp)
	if m.Class != "" {
		s.byClass[m.Class] = append(s.byClass[m.Class], mp)
		if m.Group != "" {
			k := groupKey{m.Class, m.Group}
			s.byGroup[k] = append(s.byGroup[k], mp)
		}
	}
	return mp
}

// Len returns the number of marks in s.
func (s *Scene) Len() int {
	return len(s.marks)
}

// Marks returns all marks of s in draw order. The caller must not
// modify the returned slice.
func (s *Scene) Marks() []*Mark {
	return s.marks
}

// Mark returns the mark with the given ID, or nil.
func (s *Scene) Mark(id ID) *Mark {
	if id < 1 || int(id) > len(s.marks) {
		return nil
	}
	return s.marks[id-1]
}

// Class returns the marks of class c in draw order.
func (s *Scene) Class(c string) []*Mark {
	return s.byClass[c]
}

// Group returns the marks of class c in group g in draw order.
func (s *Scene) Group(c, g string) []*Mark {
	return s.byGroup[groupKey{c, g}]
}

// Find returns the first mark of class c with key k, or nil.
func (s *Scene) Find(c, k string) *Mark {
	for _, m := range s.byClass[c] {
		if m.Key == k {
			return m
		}
	}
	return nil
}
