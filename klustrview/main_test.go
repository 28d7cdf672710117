// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/klustr/go-klustr/dataset"
	"github.com/klustr/go-klustr/internal/config"
	"github.com/klustr/go-klustr/render"
	"github.com/klustr/go-klustr/widget"
)

const projectionJSON = `{
	"PC": [
		{"d1": 1, "d2": 2, "clusters": "A", "_row": "r1"},
		{"d1": 5, "d2": 1, "clusters": "B", "_row": "r2"}
	],
	"PVE": [{"PVEs": 0.7}, {"PVEs": 0.3}],
	"idxs": [1, 2],
	"cont": [
		{"_row": "x", "PC1": 30, "PC2": 10},
		{"_row": "y", "PC1": 70, "PC2": 90}
	],
	"thresh": [25]
}`

// markID returns the ID that the mark with class c and key k gets when
// projectionJSON is rendered at cfg's size. Mark IDs are deterministic.
func markID(t *testing.T, cfg *config.Config, c, k string) int {
	t.Helper()
	in, err := dataset.Parse([]byte(projectionJSON))
	if err != nil {
		t.Fatal(err)
	}
	w := widget.New(cfg.Width, cfg.Height)
	if err := w.Render(in); err != nil {
		t.Fatal(err)
	}
	m := w.Scene().Find(c, k)
	if m == nil {
		t.Fatalf("no %s mark %q", c, k)
	}
	return int(m.ID)
}

func startServer(t *testing.T, initial []byte) (*config.Config, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	srv := httptest.NewServer(newServer(cfg, initial).router)
	t.Cleanup(srv.Close)
	return cfg, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func recv(t *testing.T, conn *websocket.Conn) reply {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var r reply
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatalf("read: %v", err)
	}
	return r
}

func TestSessionInitialFrame(t *testing.T) {
	_, srv := startServer(t, []byte(projectionJSON))
	conn := dial(t, srv)

	r := recv(t, conn)
	if r.Type != "frame" {
		t.Fatalf("got %+v, want frame", r)
	}
	if r.Session == "" {
		t.Error("frame has no session ID")
	}
	if r.View != "projection-scatter" {
		t.Errorf("view %q, want projection-scatter", r.View)
	}
	if r.Request != "render" {
		t.Errorf("request %q, want render", r.Request)
	}
	if !strings.Contains(r.SVG, "<svg") || !strings.Contains(r.SVG, "data-mark=") {
		t.Errorf("frame SVG does not look like a widget: %.80q", r.SVG)
	}
}

func TestSessionDrillDown(t *testing.T) {
	cfg, srv := startServer(t, nil)
	conn := dial(t, srv)

	if err := conn.WriteJSON(map[string]any{"type": "render", "data": json.RawMessage(projectionJSON)}); err != nil {
		t.Fatal(err)
	}
	first := recv(t, conn)
	if first.Type != "frame" {
		t.Fatalf("render reply %+v", first)
	}

	id := markID(t, cfg, render.ClassAxisLabel, "PC1")
	conn.WriteJSON(map[string]any{"type": "event", "kind": "click", "mark": id})
	r := recv(t, conn)
	if r.Type != "frame" || r.View != "contribution-bar(PC1)" {
		t.Fatalf("after click got type %q view %q error %q", r.Type, r.View, r.Error)
	}
	if r.Session != first.Session {
		t.Errorf("session changed from %s to %s", first.Session, r.Session)
	}
	if first.Request != "render" || r.Request != "event" {
		t.Errorf("requests %q, %q, want render, event", first.Request, r.Request)
	}
}

func TestSessionErrors(t *testing.T) {
	_, srv := startServer(t, nil)
	conn := dial(t, srv)

	for _, tt := range []struct {
		msg  string
		want string
	}{
		{`{"type": "event", "kind": "click", "mark": 0}`, "no data"},
		{`{"type": "render", "data": {"data": []}}`, "empty dataset"},
		{`{"type": "event", "kind": "wiggle", "mark": 0}`, "wiggle"},
		{`{"type": "explode"}`, "explode"},
		{`not json`, "invalid message"},
	} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.msg)); err != nil {
			t.Fatal(err)
		}
		r := recv(t, conn)
		if r.Type != "error" {
			t.Errorf("%s: got %+v, want error", tt.msg, r)
			continue
		}
		if !strings.Contains(strings.ToLower(r.Error), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.msg, r.Error, tt.want)
		}
	}

	// The session survives errors.
	conn.WriteJSON(map[string]any{"type": "render", "data": json.RawMessage(projectionJSON)})
	if r := recv(t, conn); r.Type != "frame" {
		t.Errorf("render after errors: %+v", r)
	}
}

func TestSessionResize(t *testing.T) {
	_, srv := startServer(t, []byte(projectionJSON))
	conn := dial(t, srv)
	recv(t, conn)

	conn.WriteJSON(map[string]any{"type": "resize", "width": 300, "height": 200})
	r := recv(t, conn)
	if r.Type != "frame" {
		t.Fatalf("resize: %+v", r)
	}
	if !strings.Contains(r.SVG, `width="300"`) {
		t.Errorf("resized SVG lacks width=\"300\": %.120q", r.SVG)
	}
}

func TestHealthz(t *testing.T) {
	_, srv := startServer(t, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != `{"status":"ok"}` {
		t.Errorf("healthz: %d %s", resp.StatusCode, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, srv := startServer(t, []byte(projectionJSON))
	conn := dial(t, srv)
	recv(t, conn)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"klustr_sessions 1", "klustr_renders_total"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics lacks %q", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics = false
	srv := httptest.NewServer(newServer(cfg, nil).router)
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("/metrics status %d with metrics disabled, want 404", resp.StatusCode)
	}
}

func TestPage(t *testing.T) {
	_, srv := startServer(t, nil)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"max-width:960px", "/ws", "data-mark", `setAttribute("style"`, `msg.request === "event"`} {
		if !bytes.Contains(body, []byte(want)) {
			t.Errorf("page lacks %q", want)
		}
	}
}

func TestCheckOrigin(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedOrigins = []string{"https://example.com"}
	s := newServer(cfg, nil)
	for _, tt := range []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://example.com", true},
		{"https://evil.example", false},
	} {
		r := httptest.NewRequest("GET", "/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := s.checkOrigin(r); got != tt.want {
			t.Errorf("checkOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "pca.json")
	if err := os.WriteFile(in, []byte(projectionJSON), 0666); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	id := markID(t, cfg, render.ClassAxisLabel, "PC2")

	out := filepath.Join(dir, "pca.svg")
	rootCmd.SetArgs([]string{"--config", filepath.Join(dir, "none.yml"),
		"render", "-i", in, "-o", out, "--click", strconv.Itoa(id)})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.40q", svg)
	}
	// The contribution view titles its component.
	if !bytes.Contains(svg, []byte("PC2")) {
		t.Error("drilled-down SVG does not mention PC2")
	}
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "klustr.yml")
	t.Setenv("KLUSTR_WIDTH", "640")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"--config", filepath.Join(dir, "none.yml"), "config", "-o", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "wrote") {
		t.Errorf("stdout %q", stdout.String())
	}
	cfg, err := config.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 {
		t.Errorf("saved width %v, want 640", cfg.Width)
	}
}

func TestShutdownLogsError(t *testing.T) {
	var once sync.Once
	started := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
	})}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go srv.Serve(ln)
	go http.Get("http://" + ln.Addr().String())
	<-started

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	// The handler is still running, so shutdown times out.
	err = shutdown(srv, 10*time.Millisecond)
	close(release)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("shutdown error %v, want %v", err, context.DeadlineExceeded)
	}
	if !strings.Contains(buf.String(), "shutdown: ") {
		t.Errorf("shutdown error not logged; log was %q", buf.String())
	}
}
