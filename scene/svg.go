// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ajstarks/svgo"
)

// fontFamily is the font of all text in a scene.
const fontFamily = "Arial, Helvetica, sans-serif"

// errWriter records the first write error so callers of the svgo
// canvas, which ignores errors, can report it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// WriteSVG encodes s as a standalone SVG document.
//
// Every mark carries a data-mark attribute holding its ID, plus its
// class and group, so a host can route pointer events back to the
// widget.
func (s *Scene) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(px(s.Width), px(s.Height), `font-family="`+fontFamily+`"`)
	canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", num(s.Origin.X), num(s.Origin.Y)))
	for _, m := range s.marks {
		writeMark(canvas, m)
	}
	canvas.Gend()
	canvas.End()
	return ew.err
}

func writeMark(canvas *svg.SVG, m *Mark) {
	attrs := []string{markAttrs(m)}
	if st := markStyle(m); st != "" {
		attrs = append(attrs, st)
	}
	if m.Title != "" {
		canvas.Group()
		canvas.Title(m.Title)
	}
	switch m.Kind {
	case Circle:
		canvas.Circle(px(m.X), px(m.Y), px(m.R), attrs...)
	case Rect:
		canvas.Rect(px(m.X), px(m.Y), px(math.Max(0, m.W)), px(math.Max(0, m.H)), attrs...)
	case Line:
		canvas.Line(px(m.X), px(m.Y), px(m.X2), px(m.Y2), attrs...)
	case Ellipse:
		canvas.Ellipse(px(m.X), px(m.Y), px(m.W), px(m.H), attrs...)
	case Polyline:
		if d := pathData(m.Points); d != "" {
			canvas.Path(d, attrs...)
		}
	case Text:
		if m.Anchor != "" {
			attrs = append(attrs, `text-anchor="`+m.Anchor+`"`)
		}
		if m.Rotate != 0 {
			attrs = append(attrs, fmt.Sprintf(`transform="rotate(%s %d %d)"`, num(m.Rotate), px(m.X), px(m.Y)))
		}
		canvas.Text(px(m.X), px(m.Y), m.Text, attrs...)
	}
	if m.Title != "" {
		canvas.Gend()
	}
}

func markAttrs(m *Mark) string {
	a := fmt.Sprintf(`data-mark="%d"`, m.ID)
	if m.Class != "" {
		a += ` class="` + html.EscapeString(m.Class) + `"`
	}
	if m.Group != "" {
		a += ` data-group="` + html.EscapeString(m.Group) + `"`
	}
	if m.Action != NoAction {
		a += fmt.Sprintf(` data-action="%d"`, int(m.Action))
	}
	return a
}

// markStyle returns the style attribute of m, or "" if it has none.
// Style values can come from input, so the attribute is escaped here
// rather than left to svgo, which passes attributes containing "="
// through verbatim.
func markStyle(m *Mark) string {
	var parts []string
	add := func(format string, args ...interface{}) {
		parts = append(parts, fmt.Sprintf(format, args...))
	}
	switch {
	case m.Fill != "":
		add("fill:%s", m.Fill)
	case m.Kind == Line || m.Kind == Polyline:
		add("fill:none")
	case m.Kind == Text:
		add("fill:black")
	}
	if m.Stroke != "" {
		add("stroke:%s", m.Stroke)
	}
	if m.StrokeWidth != 0 {
		add("stroke-width:%s", num(m.StrokeWidth))
	}
	if m.Dash != "" {
		add("stroke-dasharray:%s", m.Dash)
	}
	if m.FontSize != 0 {
		add("font-size:%spx", num(m.FontSize))
	}
	if m.Bold {
		add("font-weight:bold")
	}
	if m.Underline {
		add("text-decoration:underline")
	}
	if m.Opacity != 1 {
		add("opacity:%s", num(m.Opacity))
	}
	if m.Fade != (Fade{}) {
		add("transition:opacity %dms ease %dms", m.Fade.DurationMS, m.Fade.DelayMS)
	}
	if m.Hidden {
		add("display:none")
	}
	if m.Action != NoAction {
		add("cursor:pointer")
	}
	if len(parts) == 0 {
		return ""
	}
	return `style="` + html.EscapeString(strings.Join(parts, ";")) + `"`
}

// pathData returns SVG path data through pts, breaking the path at
// non-finite points.
func pathData(pts []Point) string {
	var path []byte
	inLine := false
	for _, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			inLine = false
			continue
		}
		if !inLine {
			path = append(path, 'M')
			inLine = true
		} else {
			path = append(path, ' ', 'L')
		}
		path = strconv.AppendFloat(path, p.X, 'g', 6, 64)
		path = append(path, ' ')
		path = strconv.AppendFloat(path, p.Y, 'g', 6, 64)
	}
	return string(path)
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}

func px(x float64) int {
	if !isFinite(x) {
		return 0
	}
	return int(math.Round(x))
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}
