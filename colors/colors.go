// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors assigns colors to clusters.
//
// Schemes are named the way the widgets' hosts name them
// ("schemeCategory10", "schemeSet1", ...). ColorBrewer schemes come
// from go-gg's brewer package; a name that is not recognized is
// treated as a literal list of colors.
package colors

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/aclements/go-gg/palette/brewer"
	"github.com/klustr/go-klustr/dataset"
)

// DefaultScheme is used when an input names no scheme.
const DefaultScheme = "schemeCategory10"

// category10 and tableau10 are not ColorBrewer schemes.
var category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

var tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// MissingColorSchemeError reports a scheme name that is not
// recognized. It is a recovered condition: Resolve still returns a
// usable Scheme built from the supplied value.
type MissingColorSchemeError struct {
	Name string
}

func (e *MissingColorSchemeError) Error() string {
	return fmt.Sprintf("unknown color scheme %q; using it as a literal color list", e.Name)
}

// A Scheme is an ordered, non-empty list of CSS colors.
type Scheme []string

// Resolve returns the scheme described by cs. A literal list of
// colors is used as is. A name is looked up among the known schemes;
// if it is unknown, Resolve splits the name on commas and spaces and
// returns the pieces as a literal scheme together with a
// *MissingColorSchemeError.
func Resolve(cs dataset.ColorScheme) (Scheme, error) {
	if cs.Name == "" {
		if len(cs.Colors) > 0 {
			return Scheme(cs.Colors), nil
		}
		cs.Name = DefaultScheme
	}
	if s, ok := lookup(cs.Name); ok {
		return s, nil
	}
	lit := cs.Colors
	if len(lit) == 0 {
		lit = strings.FieldsFunc(cs.Name, func(r rune) bool { return r == ',' || r == ' ' })
	}
	if len(lit) == 0 {
		lit = category10
	}
	return Scheme(lit), &MissingColorSchemeError{cs.Name}
}

func lookup(name string) (Scheme, bool) {
	base := strings.TrimPrefix(name, "scheme")
	switch base {
	case "Category10":
		return Scheme(category10), true
	case "Tableau10":
		return Scheme(tableau10), true
	}
	variants, ok := brewer.ByName[base]
	if !ok {
		return nil, false
	}
	// Use the variant with the most levels.
	var best Scheme
	bestN := 0
	for n, cols := range variants {
		if n <= bestN {
			continue
		}
		bestN, best = n, nil
		for _, c := range cols {
			best = append(best, hex(c))
		}
	}
	return best, len(best) > 0
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// An Ordinal assigns colors to cluster ids in domain order, cycling
// through its scheme. Within one render pass every mark of a cluster
// gets the same color.
type Ordinal struct {
	scheme Scheme
	domain []string
	index  map[string]int
}

// NewOrdinal returns an ordinal color scale over scheme. The domain
// is seeded with clusters, in order; ids first seen later are appended.
func NewOrdinal(scheme Scheme, clusters ...[]string) *Ordinal {
	if len(scheme) == 0 {
		scheme = category10
	}
	o := &Ordinal{scheme: scheme, index: make(map[string]int)}
	for _, cs := range clusters {
		for _, c := range cs {
			o.add(c)
		}
	}
	return o
}

func (o *Ordinal) add(c string) int {
	if i, ok := o.index[c]; ok {
		return i
	}
	i := len(o.domain)
	o.index[c] = i
	o.domain = append(o.domain, c)
	return i
}

// Color returns the color of cluster c.
func (o *Ordinal) Color(c string) string {
	return o.scheme[o.add(c)%len(o.scheme)]
}

// Domain returns the cluster ids known to o in assignment order.
func (o *Ordinal) Domain() []string {
	return append([]string(nil), o.domain...)
}
