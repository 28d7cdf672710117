// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom derives pixel-space scales from data domains and a
// viewport.
//
// Every function in this package is a pure function of its
// arguments. A Layout is recomputed for every render and resize and
// is never modified after it is returned. Scale domains are always
// derived from a whole Dataset, never from a filtered subset, so
// highlighting marks can never change axis geometry.
package geom

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/aclements/go-moremath/stats"
	"github.com/klustr/go-klustr/dataset"
)

// Warning is a logger for reporting conditions that don't prevent
// layout, such as a dimension with no finite values.
var Warning = log.New(os.Stderr, "[klustr] ", log.Lshortfile)

// DomainPad is the padding, in data units, added to each end of a
// projection axis so boundary points are not drawn on the axis line.
const DomainPad = 1

// BandPadding is the inter-band padding fraction of categorical bar
// axes.
const BandPadding = 0.1

// Margins is the space between the viewport edges and the plot
// area, in pixels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Layout is the plot area of one render pass: the viewport size less
// the margins.
type Layout struct {
	Margins       Margins
	Width, Height float64
}

// NewLayout returns the layout of a width x height viewport with
// margins m. The plot area is never negative.
func NewLayout(width, height float64, m Margins) Layout {
	return Layout{
		Margins: m,
		Width:   math.Max(0, width-m.Left-m.Right),
		Height:  math.Max(0, height-m.Top-m.Bottom),
	}
}

// XY is the layout of the projection-scatter view.
type XY struct {
	Layout
	X, Y Linear
}

// Bars is the layout of the contribution-bar view.
type Bars struct {
	Layout
	X Band
	Y Linear
}

// Axes is the layout of the parallel-coordinates view: one point
// position per dimension and one vertical scale per dimension.
type Axes struct {
	Layout

	// X places the axes in their drawing order.
	X Point
	Y []Linear
}

// Projection lays out ds projected onto dimensions xi and yi
// (0-based). Each axis's domain is the observed range padded by
// DomainPad on both ends.
func Projection(l Layout, ds *dataset.Dataset, xi, yi int) (*XY, error) {
	if ds.Len() == 0 {
		return nil, &dataset.EmptyDatasetError{What: "observations to project"}
	}
	for _, i := range []int{xi, yi} {
		if i < 0 || i >= len(ds.Dimensions) {
			return nil, &dataset.InvalidProjectionIndexError{Index: i, NumDims: len(ds.Dimensions)}
		}
	}
	xmin, xmax := extent(ds.Column(xi))
	ymin, ymax := extent(ds.Column(yi))
	return &XY{
		Layout: l,
		X:      NewLinear(xmin-DomainPad, xmax+DomainPad, 0, l.Width),
		Y:      NewLinear(ymin-DomainPad, ymax+DomainPad, l.Height, 0),
	}, nil
}

// Contribution lays out one bar per contribution row, with heights
// measured against the largest contribution to component.
func Contribution(l Layout, rows []dataset.Contribution, component string) (*Bars, error) {
	if len(rows) == 0 {
		return nil, &dataset.EmptyDatasetError{What: "contributions"}
	}
	dims := make([]string, len(rows))
	vals := make([]float64, len(rows))
	for i, r := range rows {
		dims[i] = r.Dimension
		vals[i] = r.Components[component]
	}
	_, max := extent(vals)
	return &Bars{
		Layout: l,
		X:      NewBand(dims, 0, l.Width, BandPadding),
		Y:      NewLinear(0, max, l.Height, 0).Rounded(),
	}, nil
}

// Parallel lays out the named dimensions of ds as evenly spaced
// vertical axes, left to right in the given order. A nil order means
// the dimensions of ds in their own order. Each dimension is scaled to
// its extent; Y is indexed like ds.Dimensions.
func Parallel(l Layout, ds *dataset.Dataset, order []string) (*Axes, error) {
	if ds.Len() == 0 {
		return nil, &dataset.EmptyDatasetError{What: "observations to plot"}
	}
	if order == nil {
		order = ds.Dimensions
	}
	for _, name := range order {
		if ds.Dimension(name) < 0 {
			return nil, &dataset.InputError{Field: "dimensions", Err: fmt.Errorf("unknown dimension %q", name)}
		}
	}
	a := &Axes{
		Layout: l,
		X:      NewPoint(order, 0, l.Width),
		Y:      make([]Linear, len(ds.Dimensions)),
	}
	for i := range ds.Dimensions {
		min, max := extent(ds.Column(i))
		a.Y[i] = NewLinear(min, max, l.Height, 0)
	}
	return a, nil
}

// extent returns the bounds of the finite values in xs. If there are
// none, it returns [0, 0].
func extent(xs []float64) (min, max float64) {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		Warning.Print("no finite values in domain; using [0, 0]")
		return 0, 0
	}
	return stats.Bounds(finite)
}
