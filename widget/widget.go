// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package widget implements the long-lived widget instance that a
// host drives with data updates, resizes, and pointer events.
//
// An Instance owns its dataset, the current view, the highlight state
// of each view, and the drawn scene. Every operation updates the
// instance's state first and then redraws; if drawing fails, the
// state is rolled back and the previous scene is left untouched.
//
// An Instance is not safe for concurrent use. The host must deliver
// events to it from a single goroutine, in order.
package widget

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/klustr/go-klustr/colors"
	"github.com/klustr/go-klustr/dataset"
	"github.com/klustr/go-klustr/geom"
	"github.com/klustr/go-klustr/render"
	"github.com/klustr/go-klustr/scene"
	"github.com/klustr/go-klustr/selection"
)

// Warning is the logger for recovered conditions, such as an unknown
// color scheme.
var Warning = log.New(os.Stderr, "[klustr] ", log.Lshortfile)

// ErrNoData is returned by operations that need data before Render
// has succeeded.
var ErrNoData = errors.New("widget has no data")

// Margins of each view. The parallel-coordinates view leaves room at
// the top for axis labels and the aggregate toggle.
var (
	ProjectionMargins   = geom.Margins{Top: 20, Right: 20, Bottom: 30, Left: 40}
	ContributionMargins = geom.Margins{Top: 20, Right: 20, Bottom: 30, Left: 40}
	ParallelMargins     = geom.Margins{Top: 60, Right: 20, Bottom: 30, Left: 40}
)

// aggregate is the mark swap performed by the aggregate toggle.
var aggregate = selection.Aggregate{
	Individual: render.ClassLine,
	Summary: map[string]float64{
		render.ClassAverage:     0.5,
		render.ClassQuartile:    1,
		render.ClassQuartileBar: 0.2,
	},
	Toggle: render.ClassToggle,
}

// An Instance is one widget on the host's page.
type Instance struct {
	width, height float64

	in      *dataset.Input
	colorOf *colors.Ordinal
	view    View

	// dots and lines hold the highlight state of the projection
	// and parallel-coordinates views. The contribution view has
	// no selectable marks.
	dots, lines *selection.Controller

	sc *scene.Scene

	// leave is the hover-leave fade of new controllers.
	leave scene.Fade
}

// New returns an Instance for a width x height viewport. It has no
// data and draws nothing until Render is called.
func New(width, height float64) *Instance {
	return &Instance{
		width:  width,
		height: height,
		sc:     scene.New(width, height),
		leave:  selection.LeaveFade,
	}
}

// SetLeaveFade sets the fade used when the pointer leaves a mark.
func (w *Instance) SetLeaveFade(f scene.Fade) {
	w.leave = f
	for _, c := range []*selection.Controller{w.dots, w.lines} {
		if c != nil {
			c.Leave = f
		}
	}
}

// Size returns the viewport size of w.
func (w *Instance) Size() (width, height float64) {
	return w.width, w.height
}

// View returns the active view of w.
func (w *Instance) View() View {
	return w.view
}

// Scene returns the scene of w. The caller must not modify it.
func (w *Instance) Scene() *scene.Scene {
	return w.sc
}

// WriteSVG writes the current scene of w as an SVG document.
func (w *Instance) WriteSVG(out io.Writer) error {
	return w.sc.WriteSVG(out)
}

// Selection returns the emphasized cluster ids of the active view, if
// it has selectable marks.
func (w *Instance) Selection() []string {
	if c := w.controller(); c != nil {
		return c.Emphasized()
	}
	return nil
}

// controller returns the selection controller of the active view, or
// nil.
func (w *Instance) controller() *selection.Controller {
	switch w.view.Mode {
	case ProjectionScatter:
		return w.dots
	case ParallelCoordinates:
		return w.lines
	}
	return nil
}

// state is the part of an Instance replaced by a transition.
type state struct {
	width, height float64
	in            *dataset.Input
	colorOf       *colors.Ordinal
	view          View
	dots, lines   *selection.Controller
}

func (w *Instance) save() state {
	return state{w.width, w.height, w.in, w.colorOf, w.view, w.dots, w.lines}
}

func (w *Instance) restore(s state) {
	w.width, w.height = s.width, s.height
	w.in, w.colorOf, w.view = s.in, s.colorOf, s.view
	w.dots, w.lines = s.dots, s.lines
}

// transition applies update to w's state and redraws. If the redraw
// fails, w's state is rolled back. The scene is only cleared by a
// redraw that has already validated its input, so a failed
// transition leaves the previous marks in place.
func (w *Instance) transition(update func()) error {
	old := w.save()
	update()
	if err := w.draw(); err != nil {
		w.restore(old)
		return err
	}
	return nil
}

// Render replaces the data of w and draws its initial view. The
// projection widget starts in ProjectionScatter mode and the
// parallel-coordinates widget in ParallelCoordinates mode, with no
// groups emphasized.
func (w *Instance) Render(in *dataset.Input) error {
	var (
		ds   *dataset.Dataset
		cs   dataset.ColorScheme
		view View
	)
	switch {
	case in == nil || (in.Projection == nil) == (in.Parallel == nil):
		return &dataset.InputError{Field: "input", Err: errors.New("need exactly one of projection or parallel data")}
	case in.Projection != nil:
		ds, cs = in.Projection.PC, in.Projection.ColorScheme
		view = View{Mode: ProjectionScatter}
	default:
		ds, cs = in.Parallel.Data, in.Parallel.ColorScheme
		view = View{Mode: ParallelCoordinates}
	}
	if ds.Len() == 0 {
		return &dataset.EmptyDatasetError{What: "observations"}
	}

	scheme, err := colors.Resolve(cs)
	if err != nil {
		var mcs *colors.MissingColorSchemeError
		if !errors.As(err, &mcs) {
			return err
		}
		Warning.Print(err)
	}

	return w.transition(func() {
		w.in = in
		w.colorOf = colors.NewOrdinal(scheme, ds.Clusters())
		w.view = view
		w.dots = selection.New(render.ClassDot, selection.PointStyle)
		w.lines = selection.New(render.ClassLine, selection.LineStyle)
		w.dots.Leave, w.lines.Leave = w.leave, w.leave
	})
}

// Resize changes the viewport of w and redraws the active view. The
// view and its highlight state are kept.
func (w *Instance) Resize(width, height float64) error {
	if w.in == nil {
		w.width, w.height = width, height
		w.sc.Width, w.sc.Height = width, height
		return nil
	}
	return w.transition(func() {
		w.width, w.height = width, height
	})
}

// Dispatch handles a pointer event on a mark of the current scene.
//
// Entering a data mark dims its peers; entering a navigation label
// bolds it. Clicking a legend entry or a line toggles its cluster.
// Clicking a drill-down label switches to the contribution view of
// its component, and clicking Return switches back. Clicking the
// aggregate toggle swaps lines and summary marks without redrawing.
func (w *Instance) Dispatch(ev Event) error {
	if w.in == nil {
		return ErrNoData
	}
	m := w.sc.Mark(ev.Mark)
	if m == nil {
		return &UnknownMarkError{ev.Mark}
	}
	if m.Hidden {
		return nil
	}
	c := w.controller()

	switch ev.Kind {
	case Enter:
		switch {
		case c != nil && m.Class == c.Class():
			c.HoverEnter(w.sc, m.ID)
		case m.Action == scene.DrillDown || m.Action == scene.Return:
			m.Bold = true
		}

	case Leave:
		switch {
		case c != nil && m.Class == c.Class():
			c.HoverLeave(w.sc)
		case m.Action == scene.DrillDown || m.Action == scene.Return:
			m.Bold = false
		}

	case Click:
		switch m.Action {
		case scene.ToggleGroup:
			if c != nil {
				c.Click(w.sc, m.Group)
			}
		case scene.DrillDown:
			return w.transition(func() {
				w.view = View{Mode: ContributionBar, Component: m.Key}
			})
		case scene.Return:
			return w.transition(func() {
				w.view = View{Mode: ProjectionScatter}
			})
		case scene.ToggleAggregate:
			w.view.Aggregate = !w.view.Aggregate
			aggregate.Apply(w.sc, w.view.Aggregate)
		}
	}
	return nil
}

// draw redraws the active view of w from scratch.
func (w *Instance) draw() error {
	w.sc.Width, w.sc.Height = w.width, w.height
	switch w.view.Mode {
	case ProjectionScatter:
		return w.drawProjection()
	case ContributionBar:
		return w.drawContribution()
	case ParallelCoordinates:
		return w.drawParallel()
	}
	return errors.New("unknown view mode " + w.view.Mode.String())
}

func (w *Instance) drawProjection() error {
	p := w.in.Projection
	if p == nil {
		return ErrNoData
	}
	xi, yi := p.Idxs[0]-1, p.Idxs[1]-1
	l := geom.NewLayout(w.width, w.height, ProjectionMargins)
	xy, err := geom.Projection(l, p.PC, xi, yi)
	if err != nil {
		return err
	}
	_, err = render.Projection(w.sc, p.PC, xy, w.colorOf, render.ProjectionOptions{
		XIndex:     xi,
		YIndex:     yi,
		PVE:        p.PVE,
		DotSize:    p.DotSize,
		LabelSizes: p.LabelSizes,
		Gridlines:  p.Gridlines,
		Drill:      len(p.Cont) > 0,
	})
	if err != nil {
		return err
	}
	w.dots.Restore(w.sc)
	return nil
}

func (w *Instance) drawContribution() error {
	p := w.in.Projection
	if p == nil {
		return ErrNoData
	}
	l := geom.NewLayout(w.width, w.height, ContributionMargins)
	bars, err := geom.Contribution(l, p.Cont, w.view.Component)
	if err != nil {
		return err
	}
	_, err = render.Contribution(w.sc, p.Cont, bars, render.ContributionOptions{
		Component:  w.view.Component,
		Threshold:  p.Thresh,
		BarColor:   p.BarColor,
		LabelSizes: p.LabelSizes,
		Gridlines:  p.BarGridlines,
	})
	return err
}

func (w *Instance) drawParallel() error {
	p := w.in.Parallel
	if p == nil {
		return ErrNoData
	}
	l := geom.NewLayout(w.width, w.height, ParallelMargins)
	axes, err := geom.Parallel(l, p.Data, p.Data.Dimensions)
	if err != nil {
		return err
	}
	o := render.ParallelOptions{LabelSizes: p.LabelSizes}
	if p.HasSummaries() {
		o.Summaries = &render.Summaries{Averages: p.Averages, Quartiles: p.Quartiles, Spans: p.Spans}
	}
	if _, err := render.ParallelCoordinates(w.sc, p.Data, p.Data.Dimensions, axes, w.colorOf, o); err != nil {
		return err
	}
	w.lines.Restore(w.sc)
	aggregate.Apply(w.sc, w.view.Aggregate)
	return nil
}
