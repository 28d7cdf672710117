// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/klustr/go-klustr/colors"
	"github.com/klustr/go-klustr/dataset"
	"github.com/klustr/go-klustr/geom"
	"github.com/klustr/go-klustr/scene"
)

// Summaries are the aggregate marks of a parallel-coordinates view.
type Summaries struct {
	Averages  []dataset.Summary
	Quartiles []dataset.Quartile
	Spans     []dataset.QuartileSpan
}

// ParallelOptions configures the parallel-coordinates view.
type ParallelOptions struct {
	LabelSizes dataset.LabelSizes

	// Summaries, if non-nil, adds hidden aggregate marks and the
	// aggregate toggle.
	Summaries *Summaries
}

// ParallelMarks are the handles of a drawn parallel-coordinates view.
type ParallelMarks struct {
	Lines        []*scene.Mark
	Averages     []*scene.Mark
	Quartiles    []*scene.Mark
	QuartileBars []*scene.Mark
	Toggle       *scene.Mark
}

// ParallelCoordinates draws one polyline per observation of ds through
// its values on each dimension of order, at the axis positions axes.X
// gives those dimensions. Summary marks on dimensions not in order are
// left out.
//
// If o.Summaries is set, it also draws per-cluster mean lines,
// quartile markers, and inter-quartile bars, all at opacity 0. The
// aggregate marks always exist in the scene so toggling aggregate
// mode only changes opacity and never has to draw.
func ParallelCoordinates(sc *scene.Scene, ds *dataset.Dataset, order []string, axes *geom.Axes, colorOf *colors.Ordinal, o ParallelOptions) (*ParallelMarks, error) {
	if ds.Len() == 0 {
		return nil, &dataset.EmptyDatasetError{What: "observations to plot"}
	}
	idx := make([]int, len(order))
	for i, name := range order {
		j := ds.Dimension(name)
		if j < 0 {
			return nil, &dataset.InputError{Field: "dimensions", Err: fmt.Errorf("unknown dimension %q", name)}
		}
		if j >= len(axes.Y) {
			return nil, &dataset.InvalidProjectionIndexError{Index: j, NumDims: len(axes.Y)}
		}
		if _, ok := axes.X.Map(name); !ok {
			return nil, &dataset.InputError{Field: "dimensions", Err: fmt.Errorf("dimension %q has no axis position", name)}
		}
		idx[i] = j
	}
	for _, obs := range ds.Observations {
		if len(obs.Values) != len(ds.Dimensions) {
			return nil, &dataset.InvalidProjectionIndexError{Index: len(obs.Values), NumDims: len(ds.Dimensions)}
		}
	}
	if s := o.Summaries; s != nil {
		for _, a := range s.Averages {
			if len(a.Means) != len(ds.Dimensions) {
				return nil, &dataset.InvalidProjectionIndexError{Index: len(a.Means), NumDims: len(ds.Dimensions)}
			}
		}
		for _, q := range s.Quartiles {
			if ds.Dimension(q.Dimension) < 0 {
				return nil, &dataset.InputError{Field: "qData", Err: fmt.Errorf("unknown dimension %q", q.Dimension)}
			}
		}
		for _, q := range s.Spans {
			if ds.Dimension(q.Dimension) < 0 {
				return nil, &dataset.InputError{Field: "qsData", Err: fmt.Errorf("unknown dimension %q", q.Dimension)}
			}
		}
	}
	sizes := o.LabelSizes

	begin(sc, axes.Layout)
	pm := new(ParallelMarks)
	w := axes.Width

	// xOf returns the position of the axis of the named
	// dimension, and false if that dimension is not drawn.
	xOf := func(name string) (float64, bool) {
		return axes.X.Map(name)
	}
	path := func(vals []float64) []scene.Point {
		pts := make([]scene.Point, len(order))
		for i, name := range order {
			j := idx[i]
			x, _ := xOf(name)
			pts[i] = scene.Point{X: x, Y: axes.Y[j].Map(vals[j])}
		}
		return pts
	}

	if s := o.Summaries; s != nil {
		for _, a := range s.Averages {
			m := sc.AddTransparent(scene.Mark{
				Kind: scene.Polyline, Class: ClassAverage, Group: a.Cluster, Key: a.Cluster,
				Points: path(a.Means), Stroke: colorOf.Color(a.Cluster), StrokeWidth: AverageWidth,
			})
			pm.Averages = append(pm.Averages, m)
		}
		for _, q := range s.Spans {
			x, ok := xOf(q.Dimension)
			if !ok {
				continue
			}
			y := axes.Y[ds.Dimension(q.Dimension)]
			y3, y1 := y.Map(q.Q3), y.Map(q.Q1)
			m := sc.AddTransparent(scene.Mark{
				Kind: scene.Rect, Class: ClassQuartileBar, Group: q.Cluster, Key: q.Dimension,
				X: x - 5, Y: y3, W: 10, H: y1 - y3,
				Fill: colorOf.Color(q.Cluster),
			})
			pm.QuartileBars = append(pm.QuartileBars, m)
		}
		for _, q := range s.Quartiles {
			x, ok := xOf(q.Dimension)
			if !ok {
				continue
			}
			y := axes.Y[ds.Dimension(q.Dimension)]
			m := sc.AddTransparent(scene.Mark{
				Kind: scene.Ellipse, Class: ClassQuartile, Group: q.Cluster, Key: q.Dimension,
				X: x, Y: y.Map(q.Value), W: 10, H: 0.5,
				Fill: colorOf.Color(q.Cluster),
			})
			pm.Quartiles = append(pm.Quartiles, m)
		}
	}

	for _, obs := range ds.Observations {
		m := sc.Add(scene.Mark{
			Kind: scene.Polyline, Class: ClassLine, Group: obs.Cluster, Key: obs.Row,
			Points: path(obs.Values), Stroke: colorOf.Color(obs.Cluster),
			StrokeWidth: LineWidth, Opacity: LineOpacity, Title: obs.Row,
			Action: scene.ToggleGroup,
		})
		pm.Lines = append(pm.Lines, m)
	}

	if o.Summaries != nil {
		pm.Toggle = sc.Add(scene.Mark{
			Kind: scene.Rect, Class: ClassToggle,
			X: w - legendSwatch, Y: -50, W: legendSwatch, H: legendSwatch,
			Fill: "white", Stroke: "black", StrokeWidth: 1,
			Action: scene.ToggleAggregate,
		})
		sc.Add(scene.Mark{
			Kind: scene.Text, Class: ClassToggleLabel,
			X: w - legendSwatch - 6, Y: -41 + 10*0.35, Anchor: "end", FontSize: 10,
			Text: "Toggle Averages",
		})
	}

	for i, name := range order {
		x, _ := xOf(name)
		leftAxis(sc, axes.Y[idx[i]], x, sizes.Get("yticks"), name)
		sc.Add(scene.Mark{
			Kind: scene.Text, Class: ClassAxisLabel, Key: name,
			X: x, Y: -9, Anchor: "middle", FontSize: sizes.Get("yaxis"), Text: name,
		})
	}
	return pm, nil
}
