// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestIndex(t *testing.T) {
	s := New(100, 100)
	a := s.Add(Mark{Class: "dot", Group: "1", Key: "r1"})
	b := s.Add(Mark{Class: "dot", Group: "2", Key: "r2"})
	c := s.Add(Mark{Class: "dot", Group: "1", Key: "r3"})
	l := s.AddTransparent(Mark{Class: "average", Group: "1"})

	if a.ID != 1 || b.ID != 2 || c.ID != 3 || l.ID != 4 {
		t.Errorf("IDs %d %d %d %d, want 1 2 3 4", a.ID, b.ID, c.ID, l.ID)
	}
	if a.Opacity != 1 || l.Opacity != 0 {
		t.Errorf("opacities %v %v, want 1 0", a.Opacity, l.Opacity)
	}
	if got := s.Group("dot", "1"); len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("Group(dot, 1) = %v", got)
	}
	if got := s.Class("dot"); len(got) != 3 {
		t.Errorf("Class(dot) has %d marks, want 3", len(got))
	}
	if s.Find("dot", "r2") != b || s.Find("dot", "nope") != nil {
		t.Errorf("Find returned the wrong mark")
	}
	if s.Mark(2) != b || s.Mark(0) != nil || s.Mark(5) != nil {
		t.Errorf("Mark lookup wrong")
	}

	s.Clear()
	if s.Len() != 0 || len(s.Class("dot")) != 0 || len(s.Group("dot", "1")) != 0 {
		t.Errorf("Clear left marks behind")
	}
	if m := s.Add(Mark{}); m.ID != 1 {
		t.Errorf("ID after Clear = %d, want 1", m.ID)
	}
}

func TestWriteSVG(t *testing.T) {
	s := New(200, 100)
	s.Origin = Point{40, 20}
	s.Add(Mark{Kind: Circle, Class: "dot", Group: "A", X: 10, Y: 20, R: 3.5, Fill: "#ff0000", Title: "r1 & co", Action: Hover})
	s.Add(Mark{Kind: Rect, Class: "legend", X: 1, Y: 2, W: 18, H: 18, Opacity: 0.1, Fade: Fade{DelayMS: 100, DurationMS: 500}})
	s.Add(Mark{Kind: Polyline, Class: "line", Points: []Point{{0, 0}, {10, math.NaN()}, {20, 5}, {30, 6}}, Stroke: "blue", Hidden: true})
	s.Add(Mark{Kind: Text, Class: "axis-label", X: 5, Y: 6, Text: "PC1 - 70.00%", Anchor: "end", Rotate: -90, Bold: true, Underline: true})
	s.Add(Mark{Kind: Line, Class: "threshold", X: 0, Y: 50, X2: 160, Y2: 50, Dash: "3, 3"})

	var buf bytes.Buffer
	if err := s.WriteSVG(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`<svg`,
		`width="200"`,
		`translate(40,20)`,
		`data-mark="1" class="dot" data-group="A"`,
		`<title>r1 &amp; co</title>`,
		`fill:#ff0000`,
		`cursor:pointer`,
		`opacity:0.1`,
		`transition:opacity 500ms ease 100ms`,
		`d="M0 0 M20 5 L30 6"`,
		`display:none`,
		`text-anchor="end"`,
		`rotate(-90 5 6)`,
		`font-weight:bold`,
		`text-decoration:underline`,
		`PC1 - 70.00%`,
		`stroke-dasharray:3, 3`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSVGEscapesStyle(t *testing.T) {
	s := New(10, 10)
	s.Add(Mark{Kind: Circle, Class: "dot", R: 1, Fill: `red" onmouseover="alert(1)`})
	s.Add(Mark{Kind: Rect, Class: "bar", W: 1, H: 1, Fill: "steelblue", Stroke: `<x>`})
	var buf bytes.Buffer
	if err := s.WriteSVG(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, bad := range []string{`onmouseover="`, `<x>`} {
		if strings.Contains(out, bad) {
			t.Errorf("SVG contains unescaped %q:\n%s", bad, out)
		}
	}
	for _, want := range []string{
		`style="fill:red&#34; onmouseover=&#34;alert(1)"`,
		`style="fill:steelblue;stroke:&lt;x&gt;"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q:\n%s", want, out)
		}
	}
}

func TestPathData(t *testing.T) {
	for _, test := range []struct {
		pts  []Point
		want string
	}{
		{nil, ""},
		{[]Point{{math.NaN(), 1}}, ""},
		{[]Point{{1, 2}, {3.5, 4}}, "M1 2 L3.5 4"},
		{[]Point{{1, 2}, {math.Inf(1), 0}, {5, 6}}, "M1 2 M5 6"},
	} {
		if got := pathData(test.pts); got != test.want {
			t.Errorf("pathData(%v) = %q, want %q", test.pts, got, test.want)
		}
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteSVGError(t *testing.T) {
	s := New(10, 10)
	s.Add(Mark{Kind: Circle, R: 1})
	if err := s.WriteSVG(failWriter{}); err == nil || err.Error() != "disk full" {
		t.Errorf("WriteSVG error %v, want disk full", err)
	}
}
