// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import "fmt"

// Mode is the chart mode of a View.
type Mode int

const (
	ProjectionScatter Mode = iota
	ContributionBar
	ParallelCoordinates
)

func (m Mode) String() string {
	switch m {
	case ProjectionScatter:
		return "projection-scatter"
	case ContributionBar:
		return "contribution-bar"
	case ParallelCoordinates:
		return "parallel-coordinates"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// A View is the active view of an Instance: a mode together with its
// associated state.
type View struct {
	Mode Mode

	// Component is the principal component drilled into. It is
	// only meaningful in ContributionBar mode.
	Component string

	// Aggregate reports whether summary marks are shown instead of
	// individual lines. It is only meaningful in
	// ParallelCoordinates mode.
	Aggregate bool
}

func (v View) String() string {
	switch {
	case v.Mode == ParallelCoordinates && v.Aggregate:
		return "parallel-coordinates-aggregate"
	case v.Mode == ContributionBar && v.Component != "":
		return "contribution-bar(" + v.Component + ")"
	}
	return v.Mode.String()
}
