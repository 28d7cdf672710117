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

// ProjectionOptions configures the projection-scatter view.
type ProjectionOptions struct {
	// XIndex and YIndex are the 0-based components projected onto
	// the X and Y axes.
	XIndex, YIndex int

	// PVE is the proportion of variance explained by each
	// component.
	PVE []float64

	DotSize    float64
	LabelSizes dataset.LabelSizes
	Gridlines  bool

	// Drill makes the axis labels drill down into the
	// contribution view.
	Drill bool
}

// ProjectionMarks are the handles of a drawn projection view.
type ProjectionMarks struct {
	Dots       []*scene.Mark
	Legend     []*scene.Mark
	AxisLabels [2]*scene.Mark
}

// ComponentName returns the name of the 0-based component i.
func ComponentName(i int) string {
	return fmt.Sprintf("PC%d", i+1)
}

// Projection draws one point per observation of ds at its projected
// coordinates, one clickable label per projected axis, and one legend
// entry per cluster in order of first appearance.
func Projection(sc *scene.Scene, ds *dataset.Dataset, xy *geom.XY, colorOf *colors.Ordinal, o ProjectionOptions) (*ProjectionMarks, error) {
	if ds.Len() == 0 {
		return nil, &dataset.EmptyDatasetError{What: "observations to project"}
	}
	for _, i := range []int{o.XIndex, o.YIndex} {
		if i < 0 || i >= len(ds.Dimensions) {
			return nil, &dataset.InvalidProjectionIndexError{Index: i, NumDims: len(ds.Dimensions)}
		}
		if i >= len(o.PVE) {
			return nil, &dataset.InvalidProjectionIndexError{Index: i, NumDims: len(o.PVE)}
		}
	}
	for _, obs := range ds.Observations {
		if len(obs.Values) != len(ds.Dimensions) {
			return nil, &dataset.InvalidProjectionIndexError{Index: len(obs.Values), NumDims: len(ds.Dimensions)}
		}
	}
	dotSize := o.DotSize
	if dotSize <= 0 {
		dotSize = 3.5
	}
	sizes := o.LabelSizes

	begin(sc, xy.Layout)
	pm := new(ProjectionMarks)
	w, h := xy.Width, xy.Height

	if o.Gridlines {
		hGrid(sc, xy.Y, w)
		vGrid(sc, xy.X, h)
	}

	// Axes and their drill-down labels.
	labelAction := scene.NoAction
	if o.Drill {
		labelAction = scene.DrillDown
	}
	bottomAxis(sc, xy.X, h, sizes.Get("xticks"))
	pm.AxisLabels[0] = sc.Add(scene.Mark{
		Kind: scene.Text, Class: ClassAxisLabel, Key: ComponentName(o.XIndex),
		X: w, Y: h - 6, Anchor: "end", FontSize: sizes.Get("xaxis"),
		Text:   fmt.Sprintf("%s - %.2f%%", ComponentName(o.XIndex), o.PVE[o.XIndex]*100),
		Action: labelAction,
	})
	leftAxis(sc, xy.Y, 0, sizes.Get("yticks"), "")
	pm.AxisLabels[1] = sc.Add(scene.Mark{
		Kind: scene.Text, Class: ClassAxisLabel, Key: ComponentName(o.YIndex),
		X: 6 + sizes.Get("yaxis")*0.71, Y: 6, Anchor: "end", Rotate: -90, FontSize: sizes.Get("yaxis"),
		Text:   fmt.Sprintf("%s - %.2f%%", ComponentName(o.YIndex), o.PVE[o.YIndex]*100),
		Action: labelAction,
	})

	// Points. A point with a missing coordinate has no position, so
	// it is kept hidden.
	for _, obs := range ds.Observations {
		x, y := xy.X.Map(obs.Values[o.XIndex]), xy.Y.Map(obs.Values[o.YIndex])
		m := sc.Add(scene.Mark{
			Kind: scene.Circle, Class: ClassDot, Group: obs.Cluster, Key: obs.Row,
			X: x, Y: y, R: dotSize,
			Fill: colorOf.Color(obs.Cluster), Title: obs.Row,
			Action: scene.Hover,
			Hidden: !finite(x) || !finite(y),
		})
		pm.Dots = append(pm.Dots, m)
	}

	// Legend.
	for i, c := range ds.Clusters() {
		y := float64(i * legendRowHeight)
		m := sc.Add(scene.Mark{
			Kind: scene.Rect, Class: ClassLegend, Group: c, Key: c,
			X: w - legendSwatch, Y: y, W: legendSwatch, H: legendSwatch,
			Fill: colorOf.Color(c), Action: scene.ToggleGroup,
		})
		pm.Legend = append(pm.Legend, m)
		sc.Add(scene.Mark{
			Kind: scene.Text, Class: ClassLegendLabel, Group: c, Key: c,
			X: w - legendSwatch - 6, Y: y + legendSwatch/2 + sizes.Get("legend")*0.35,
			Anchor: "end", FontSize: sizes.Get("legend"), Text: c,
		})
	}
	return pm, nil
}
