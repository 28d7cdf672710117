// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import "github.com/klustr/go-klustr/scene"

// Aggregate describes the two mark sets swapped by an aggregate
// toggle.
type Aggregate struct {
	// Individual is the class of per-observation marks, hidden
	// while aggregate mode is on. Hiding leaves their opacity, and
	// so their recorded highlight, untouched.
	Individual string

	// Summary maps each summary class to its opacity while
	// aggregate mode is on. Summary marks are transparent while it
	// is off.
	Summary map[string]float64

	// Toggle is the class of the toggle control, filled black
	// while aggregate mode is on.
	Toggle string
}

// Apply shows the summary marks and hides the individual marks of sc
// if on, and does the reverse otherwise. It never moves a mark.
func (a Aggregate) Apply(sc *scene.Scene, on bool) {
	for class, target := range a.Summary {
		op := 0.0
		if on {
			op = target
		}
		for _, m := range sc.Class(class) {
			m.Opacity = op
			m.Fade = scene.Fade{}
		}
	}
	for _, m := range sc.Class(a.Individual) {
		m.Hidden = on
	}
	for _, m := range sc.Class(a.Toggle) {
		if on {
			m.Fill = "black"
		} else {
			m.Fill = "white"
		}
	}
}
