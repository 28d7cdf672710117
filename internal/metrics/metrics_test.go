// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObserve(t *testing.T) {
	m := New()
	m.Observe("render", "projection-scatter", time.Now(), nil)
	m.Observe("event", "projection-scatter", time.Now(), errors.New("boom"))
	m.Events.WithLabelValues("click").Inc()
	m.Sessions.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)
	for _, want := range []string{
		`klustr_renders_total{outcome="ok",view="projection-scatter"} 1`,
		`klustr_renders_total{outcome="error",view="projection-scatter"} 1`,
		`klustr_render_seconds_count{kind="render"} 1`,
		`klustr_events_total{kind="click"} 1`,
		`klustr_sessions 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q:\n%s", want, out)
		}
	}
}

func TestIndependentRegistries(t *testing.T) {
	// Two servers in one process must not collide.
	a, b := New(), New()
	a.Sessions.Inc()
	mfs, err := b.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "klustr_sessions" && mf.GetMetric()[0].GetGauge().GetValue() != 0 {
			t.Errorf("sessions gauge shared between registries")
		}
	}
}
