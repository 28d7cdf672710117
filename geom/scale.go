// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Linear maps a continuous data domain onto a pixel range. The range
// may be inverted (R0 > R1), as it is for Y axes.
type Linear struct {
	s      scale.Linear
	R0, R1 float64
	round  bool
}

// NewLinear returns a linear scale from [min, max] to [r0, r1].
func NewLinear(min, max, r0, r1 float64) Linear {
	return Linear{s: scale.Linear{Min: min, Max: max, Base: 10}, R0: r0, R1: r1}
}

// Rounded returns a copy of l whose mapped values are rounded to
// whole pixels.
func (l Linear) Rounded() Linear {
	l.round = true
	return l
}

// Domain returns the data domain of l.
func (l Linear) Domain() (min, max float64) {
	return l.s.Min, l.s.Max
}

// Map maps data value x to pixel space. A degenerate domain maps
// every value to the middle of the range.
func (l Linear) Map(x float64) float64 {
	var u float64
	if l.s.Min == l.s.Max {
		u = 0.5
	} else {
		u = l.s.Map(x)
	}
	v := l.R0 + u*(l.R1-l.R0)
	if l.round {
		v = math.Round(v)
	}
	return v
}

// Ticks returns at most max "nice" tick values within the domain of
// l, in increasing order.
func (l Linear) Ticks(max int) []float64 {
	if l.s.Min == l.s.Max {
		return []float64{l.s.Min}
	}
	major, _ := l.s.Ticks(scale.TickOptions{Max: max})
	return major
}

// Point places an ordered set of categories at evenly spaced
// positions over a pixel range, with the first and last categories at
// the ends of the range. A single category sits in the middle.
type Point struct {
	Domain []string
	R0, R1 float64
	index  map[string]int
}

// NewPoint returns a point scale of domain over [r0, r1].
func NewPoint(domain []string, r0, r1 float64) Point {
	p := Point{Domain: domain, R0: r0, R1: r1, index: make(map[string]int, len(domain))}
	for i, d := range domain {
		p.index[d] = i
	}
	return p
}

// Step returns the distance between adjacent points.
func (p Point) Step() float64 {
	n := len(p.Domain) - 1
	if n < 1 {
		n = 1
	}
	return (p.R1 - p.R0) / float64(n)
}

// Map returns the position of category c and whether c is in the
// domain.
func (p Point) Map(c string) (float64, bool) {
	i, ok := p.index[c]
	if !ok {
		return math.NaN(), false
	}
	return p.At(i), true
}

// At returns the position of the i'th category.
func (p Point) At(i int) float64 {
	if len(p.Domain) == 1 {
		return (p.R0 + p.R1) / 2
	}
	return p.R0 + float64(i)*p.Step()
}

// Band divides a pixel range into equal bands, one per category,
// separated by a padding fraction of the step. The same fraction is
// used as outer padding. Positions are rounded to whole pixels.
type Band struct {
	Domain  []string
	Padding float64

	start, step, bandwidth float64
	index                  map[string]int
}

// NewBand returns a rounded band scale of domain over [r0, r1] with
// the given padding fraction in [0, 1).
func NewBand(domain []string, r0, r1, padding float64) Band {
	b := Band{Domain: domain, Padding: padding, index: make(map[string]int, len(domain))}
	for i, d := range domain {
		b.index[d] = i
	}
	n := float64(len(domain))
	b.step = (r1 - r0) / math.Max(1, n-padding+2*padding)
	b.step = math.Floor(b.step)
	b.start = r0 + math.Round((r1-r0-b.step*(n-padding))/2)
	b.bandwidth = math.Round(b.step * (1 - padding))
	return b
}

// Bandwidth returns the width of each band.
func (b Band) Bandwidth() float64 {
	return b.bandwidth
}

// Step returns the distance between the starts of adjacent bands.
func (b Band) Step() float64 {
	return b.step
}

// Map returns the start of category c's band and whether c is in the
// domain.
func (b Band) Map(c string) (float64, bool) {
	i, ok := b.index[c]
	if !ok {
		return math.NaN(), false
	}
	return b.At(i), true
}

// At returns the start of the i'th band.
func (b Band) At(i int) float64 {
	return b.start + b.step*float64(i)
}
