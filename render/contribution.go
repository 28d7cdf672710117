// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"math"

	"github.com/klustr/go-klustr/dataset"
	"github.com/klustr/go-klustr/geom"
	"github.com/klustr/go-klustr/scene"
)

// ContributionOptions configures the contribution-bar view.
type ContributionOptions struct {
	// Component is the principal component whose per-dimension
	// contributions are drawn, such as "PC1".
	Component string

	// Threshold is the significance threshold, in percent. NaN
	// draws no threshold line.
	Threshold float64

	BarColor   string
	LabelSizes dataset.LabelSizes
	Gridlines  bool
}

// ContributionMarks are the handles of a drawn contribution view.
type ContributionMarks struct {
	Bars      []*scene.Mark
	Threshold *scene.Mark
	Title     *scene.Mark
	Return    *scene.Mark
}

// Contribution draws one bar per dimension sized to its contribution
// to o.Component, a dashed threshold line, a title naming the
// component, and a Return button.
func Contribution(sc *scene.Scene, rows []dataset.Contribution, bars *geom.Bars, o ContributionOptions) (*ContributionMarks, error) {
	if len(rows) == 0 {
		return nil, &dataset.EmptyDatasetError{What: "contributions"}
	}
	found := false
	for _, r := range rows {
		if _, ok := r.Components[o.Component]; ok {
			found = true
			break
		}
	}
	if !found {
		return nil, &dataset.InputError{Field: "cont", Err: fmt.Errorf("no contributions to %s", o.Component)}
	}
	sizes := o.LabelSizes
	fill := o.BarColor
	if fill == "" {
		fill = "steelblue"
	}

	begin(sc, bars.Layout)
	cm := new(ContributionMarks)
	w, h := bars.Width, bars.Height

	if o.Gridlines {
		hGrid(sc, bars.Y, w)
	}
	bandAxis(sc, bars.X, w, h, sizes.Get("xticks"))
	leftAxis(sc, bars.Y, 0, sizes.Get("yticks"), "")

	for i, r := range rows {
		v := r.Components[o.Component]
		y := bars.Y.Map(v)
		m := sc.Add(scene.Mark{
			Kind: scene.Rect, Class: ClassBar, Key: r.Dimension,
			X: bars.X.At(i), Y: y, W: bars.X.Bandwidth(), H: h - y,
			Fill: fill, Title: fmt.Sprintf("%.2f%%", v),
		})
		cm.Bars = append(cm.Bars, m)
	}

	if !math.IsNaN(o.Threshold) {
		y := bars.Y.Map(o.Threshold)
		cm.Threshold = sc.Add(scene.Mark{
			Kind: scene.Line, Class: ClassThreshold,
			X: 0, Y: y, X2: w, Y2: y,
			Stroke: "darkred", StrokeWidth: 1.5, Dash: "3, 3",
		})
	}

	top := -bars.Margins.Top / 3
	retX := w - w/10
	title := "Contribution (%) of Variables to " + o.Component
	cm.Title = sc.Add(scene.Mark{
		Kind: scene.Text, Class: ClassTitle, Key: o.Component,
		X: 0, Y: top, Anchor: "start", Text: title,
		FontSize: fitFont(title, sizes.Get("title"), math.Max(retX-textWidth("Return", 12), 1)),
	})
	cm.Return = sc.Add(scene.Mark{
		Kind: scene.Text, Class: ClassReturn,
		X: retX, Y: top, Anchor: "start", Text: "Return",
		FontSize: 12, Underline: true, Action: scene.Return,
	})
	return cm, nil
}
