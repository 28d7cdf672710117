// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/klustr/go-klustr/dataset"
)

func init() {
	Warning.SetOutput(io.Discard)
}

var testDS = &dataset.Dataset{
	Dimensions: []string{"d1", "d2", "d3"},
	Observations: []dataset.Observation{
		{Row: "r1", Cluster: "A", Values: []float64{1, 2, 0}},
		{Row: "r2", Cluster: "B", Values: []float64{5, 1, math.NaN()}},
	},
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(600, 400, Margins{Top: 20, Right: 20, Bottom: 30, Left: 40})
	if l.Width != 540 || l.Height != 350 {
		t.Errorf("plot area %vx%v, want 540x350", l.Width, l.Height)
	}
	l = NewLayout(10, 10, Margins{Top: 20, Right: 20, Bottom: 30, Left: 40})
	if l.Width != 0 || l.Height != 0 {
		t.Errorf("tiny viewport plot area %vx%v, want 0x0", l.Width, l.Height)
	}
}

func TestProjection(t *testing.T) {
	l := NewLayout(600, 400, Margins{})
	xy, err := Projection(l, testDS, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if min, max := xy.X.Domain(); min != 0 || max != 6 {
		t.Errorf("X domain [%v, %v], want [0, 6]", min, max)
	}
	if min, max := xy.Y.Domain(); min != 0 || max != 3 {
		t.Errorf("Y domain [%v, %v], want [0, 3]", min, max)
	}
	if got := xy.X.Map(3); got != 300 {
		t.Errorf("X.Map(3) = %v, want 300", got)
	}
	// Y is inverted: larger values are higher up.
	if got := xy.Y.Map(3); got != 0 {
		t.Errorf("Y.Map(3) = %v, want 0", got)
	}
	if got := xy.Y.Map(0); got != 400 {
		t.Errorf("Y.Map(0) = %v, want 400", got)
	}
}

func TestProjectionErrors(t *testing.T) {
	l := NewLayout(600, 400, Margins{})
	var ee *dataset.EmptyDatasetError
	if _, err := Projection(l, &dataset.Dataset{}, 0, 1); !errors.As(err, &ee) {
		t.Errorf("empty dataset: got %v, want EmptyDatasetError", err)
	}
	if _, err := Projection(l, nil, 0, 1); !errors.As(err, &ee) {
		t.Errorf("nil dataset: got %v, want EmptyDatasetError", err)
	}
	var ie *dataset.InvalidProjectionIndexError
	for _, idx := range [][2]int{{0, 3}, {-1, 0}} {
		if _, err := Projection(l, testDS, idx[0], idx[1]); !errors.As(err, &ie) {
			t.Errorf("indexes %v: got %v, want InvalidProjectionIndexError", idx, err)
		}
	}
}

func TestContribution(t *testing.T) {
	rows := []dataset.Contribution{
		{Dimension: "a", Components: map[string]float64{"PC1": 20}},
		{Dimension: "b", Components: map[string]float64{"PC1": 40}},
	}
	bars, err := Contribution(NewLayout(200, 100, Margins{}), rows, "PC1")
	if err != nil {
		t.Fatal(err)
	}
	if got := bars.Y.Map(40); got != 0 {
		t.Errorf("Y.Map(max) = %v, want 0", got)
	}
	if got := bars.Y.Map(20); got != 50 {
		t.Errorf("Y.Map(max/2) = %v, want 50", got)
	}
	if _, err := Contribution(NewLayout(200, 100, Margins{}), nil, "PC1"); err == nil {
		t.Errorf("no rows: no error")
	}
}

func TestParallel(t *testing.T) {
	a, err := Parallel(NewLayout(300, 100, Margins{}), testDS, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{0, 150, 300} {
		if got, ok := a.X.Map(testDS.Dimensions[i]); !ok || got != want {
			t.Errorf("X.Map(%s) = %v, %v; want %v", testDS.Dimensions[i], got, ok, want)
		}
	}
	if len(a.Y) != 3 {
		t.Fatalf("got %d Y scales, want 3", len(a.Y))
	}
	if got := a.Y[0].Map(5); got != 0 {
		t.Errorf("d1 max maps to %v, want 0", got)
	}
	// NaNs are ignored when computing extents.
	if min, max := a.Y[2].Domain(); min != 0 || max != 0 {
		t.Errorf("d3 domain [%v, %v], want [0, 0]", min, max)
	}
	if got := a.Y[2].Map(0); got != 50 {
		t.Errorf("degenerate domain maps to %v, want middle 50", got)
	}
}

func TestParallelOrder(t *testing.T) {
	a, err := Parallel(NewLayout(300, 100, Margins{}), testDS, []string{"d3", "d1"})
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range []struct {
		dim string
		x   float64
		ok  bool
	}{
		{"d3", 0, true},
		{"d1", 300, true},
		{"d2", 0, false},
	} {
		x, ok := a.X.Map(tt.dim)
		if ok != tt.ok || (ok && x != tt.x) {
			t.Errorf("X.Map(%s) = %v, %v; want %v, %v", tt.dim, x, ok, tt.x, tt.ok)
		}
	}
	// Y stays indexed by dataset column.
	if len(a.Y) != 3 || a.Y[0].Map(5) != 0 {
		t.Errorf("Y scales not indexed by column")
	}

	_, err = Parallel(NewLayout(300, 100, Margins{}), testDS, []string{"d1", "nope"})
	var ie *dataset.InputError
	if !errors.As(err, &ie) {
		t.Errorf("unknown dimension: got %v, want *InputError", err)
	}
}

func TestPoint(t *testing.T) {
	p := NewPoint([]string{"only"}, 0, 100)
	if got, _ := p.Map("only"); got != 50 {
		t.Errorf("single category at %v, want 50", got)
	}
	if _, ok := p.Map("missing"); ok {
		t.Errorf("unknown category mapped")
	}
}

func TestBand(t *testing.T) {
	b := NewBand([]string{"a", "b", "c"}, 0, 100, BandPadding)
	if b.Bandwidth() <= 0 || b.Bandwidth() >= b.Step() {
		t.Fatalf("bandwidth %v, step %v", b.Bandwidth(), b.Step())
	}
	for i, d := range b.Domain {
		x, ok := b.Map(d)
		if !ok || x != math.Round(x) {
			t.Errorf("band %s at %v, want a whole pixel", d, x)
		}
		if x < 0 || x+b.Bandwidth() > 100 {
			t.Errorf("band %s [%v, %v] outside range", d, x, x+b.Bandwidth())
		}
		if i > 0 && x-b.At(i-1) != b.Step() {
			t.Errorf("band %s not one step after previous", d)
		}
	}
	// Bands are centered: outer padding is the same on both
	// ends, up to rounding.
	left := b.At(0)
	right := 100 - (b.At(2) + b.Bandwidth())
	if math.Abs(left-right) > 1.5 {
		t.Errorf("outer padding %v and %v not balanced", left, right)
	}
}

func TestTicks(t *testing.T) {
	l := NewLinear(0, 100, 0, 500)
	ticks := l.Ticks(10)
	if len(ticks) == 0 || len(ticks) > 10 {
		t.Fatalf("got %d ticks, want 1 to 10", len(ticks))
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			t.Errorf("ticks not increasing: %v", ticks)
		}
	}
	for _, x := range ticks {
		if x < 0 || x > 100 {
			t.Errorf("tick %v outside domain", x)
		}
	}
}
