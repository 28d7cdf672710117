// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset defines the clustered data displayed by the klustr
// widgets and parses the input handed to them by the statistics
// layer.
//
// All values in this package are immutable once parsed. The
// dimension order of a Dataset is the key order of its first input
// record and is stable across re-renders.
package dataset

// An Observation is one clustered record: a label, a cluster
// assignment, and one value per dimension of its Dataset.
type Observation struct {
	// Row is the identifying label of the observation.
	Row string

	// Cluster is the textual form of the cluster assignment.
	// Numeric cluster ids are keyed by their JSON spelling.
	Cluster string

	// Values holds one value per Dataset dimension, in
	// Dataset.Dimensions order.
	Values []float64
}

// A Dataset is the ordered sequence of Observations for one
// rendering pass.
type Dataset struct {
	Dimensions   []string
	Observations []Observation
}

// Len returns the number of observations in d.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Observations)
}

// Dimension returns the index of dimension name in d, or -1.
func (d *Dataset) Dimension(name string) int {
	for i, dim := range d.Dimensions {
		if dim == name {
			return i
		}
	}
	return -1
}

// Column returns the values of dimension i across all observations.
func (d *Dataset) Column(i int) []float64 {
	col := make([]float64, len(d.Observations))
	for j, o := range d.Observations {
		col[j] = o.Values[i]
	}
	return col
}

// Clusters returns the distinct cluster ids of d in order of first
// appearance.
func (d *Dataset) Clusters() []string {
	var out []string
	seen := make(map[string]bool)
	for _, o := range d.Observations {
		if !seen[o.Cluster] {
			seen[o.Cluster] = true
			out = append(out, o.Cluster)
		}
	}
	return out
}

// A Summary is the per-cluster mean line used in aggregate mode.
// Means is aligned with the Dimensions of the Dataset it summarizes.
type Summary struct {
	Cluster string
	Means   []float64
}

// A Quartile is one quartile marker of one cluster on one dimension.
type Quartile struct {
	Cluster, Dimension string
	Value              float64
}

// A QuartileSpan is the inter-quartile range of one cluster on one
// dimension.
type QuartileSpan struct {
	Cluster, Dimension string
	Q1, Q3             float64
}

// A Contribution gives, for one dimension, its contribution
// percentage to each principal component, keyed by component name
// ("PC1", "PC2", ...).
type Contribution struct {
	Dimension  string
	Components map[string]float64
}

// LabelSizes maps a label role (xticks, yticks, xaxis, yaxis, legend,
// title, tooltip) to a font size in pixels.
type LabelSizes map[string]float64

// Default label sizes in pixels.
var defaultLabelSizes = LabelSizes{
	"xticks":  10,
	"yticks":  10,
	"xaxis":   10,
	"yaxis":   10,
	"legend":  10,
	"title":   16,
	"tooltip": 14,
}

// Get returns the size of label role, falling back to the default
// size for that role.
func (s LabelSizes) Get(role string) float64 {
	if v, ok := s[role]; ok && v > 0 {
		return v
	}
	if v, ok := defaultLabelSizes[role]; ok {
		return v
	}
	return 10
}

// A ColorScheme is either the name of a known scheme or a literal
// ordered list of colors. If both are set, the name wins.
type ColorScheme struct {
	Name   string
	Colors []string
}

// ProjectionInput is the input of the projection widget: the
// projection-scatter view and its contribution-bar drill-down.
type ProjectionInput struct {
	// PC holds the projected observations; its dimensions are the
	// principal components.
	PC *Dataset

	// PVE is the proportion of variance explained by each
	// component, in [0, 1].
	PVE []float64

	// Idxs are the 1-based indexes of the two components to
	// project onto.
	Idxs [2]int

	ColorScheme ColorScheme
	LabelSizes  LabelSizes
	DotSize     float64
	Gridlines   bool

	// Cont, Thresh, and BarColor feed the contribution-bar
	// view. Cont may be empty, in which case the view cannot be
	// entered.
	Cont         []Contribution
	Thresh       float64
	BarColor     string
	BarGridlines bool
}

// ParallelInput is the input of the parallel-coordinates widget.
type ParallelInput struct {
	Data *Dataset

	// Averages, Quartiles, and Spans are the precomputed
	// aggregate marks. They may be empty.
	Averages  []Summary
	Quartiles []Quartile
	Spans     []QuartileSpan

	ColorScheme ColorScheme
	LabelSizes  LabelSizes
}

// HasSummaries reports whether p carries any aggregate data.
func (p *ParallelInput) HasSummaries() bool {
	return len(p.Averages) > 0 || len(p.Quartiles) > 0 || len(p.Spans) > 0
}

// Input is one parsed data update. Exactly one of Projection and
// Parallel is non-nil.
type Input struct {
	Projection *ProjectionInput
	Parallel   *ParallelInput
}
