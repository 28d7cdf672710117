// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/klustr/go-klustr/dataset"
	"github.com/klustr/go-klustr/internal/config"
	"github.com/klustr/go-klustr/internal/metrics"
	"github.com/klustr/go-klustr/scene"
	"github.com/klustr/go-klustr/widget"
)

// request is a message from the page.
//
//	{"type": "render", "data": {...widget input...}}
//	{"type": "resize", "width": 800, "height": 600}
//	{"type": "event", "kind": "click", "mark": 12}
type request struct {
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data,omitempty"`
	Width  float64         `json:"width,omitempty"`
	Height float64         `json:"height,omitempty"`
	Kind   string          `json:"kind,omitempty"`
	Mark   int             `json:"mark,omitempty"`
}

// reply is a message to the page: either a frame holding the redrawn
// view or an error. An error leaves the previous frame current.
// Request is the type of the message being answered.
type reply struct {
	Type    string `json:"type"`
	Request string `json:"request,omitempty"`
	Session string `json:"session"`
	View    string `json:"view,omitempty"`
	SVG     string `json:"svg,omitempty"`
	Error   string `json:"error,omitempty"`
}

// A session is one connected page. Its widget instance is owned by
// the goroutine running the session, which handles messages strictly
// in arrival order.
type session struct {
	id      string
	conn    *websocket.Conn
	w       *widget.Instance
	metrics *metrics.Metrics
}

func newSession(conn *websocket.Conn, cfg *config.Config, m *metrics.Metrics) *session {
	w := widget.New(cfg.Width, cfg.Height)
	w.SetLeaveFade(cfg.LeaveFade())
	return &session{id: uuid.NewString(), conn: conn, w: w, metrics: m}
}

// run handles messages until the connection closes. If initial is
// non-nil, it is rendered before the first message.
func (s *session) run(initial []byte) {
	if initial != nil {
		s.reply("render", s.handle(request{Type: "render", Data: initial}))
	}
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: read: %v", s.id, err)
			}
			return
		}
		var req request
		if err := json.Unmarshal(msg, &req); err != nil {
			s.reply("", fmt.Errorf("invalid message: %w", err))
			continue
		}
		s.reply(req.Type, s.handle(req))
	}
}

// handle applies one request to the session's widget.
func (s *session) handle(req request) error {
	start := time.Now()
	var err error
	switch req.Type {
	case "render":
		var in *dataset.Input
		if in, err = dataset.Parse(req.Data); err == nil {
			err = s.w.Render(in)
		}
	case "resize":
		err = s.w.Resize(req.Width, req.Height)
	case "event":
		var kind widget.EventKind
		if kind, err = widget.ParseEventKind(req.Kind); err == nil {
			s.metrics.Events.WithLabelValues(req.Kind).Inc()
			err = s.w.Dispatch(widget.Event{Kind: kind, Mark: scene.ID(req.Mark)})
		}
	default:
		err = fmt.Errorf("unknown message type %q", req.Type)
	}
	s.metrics.Observe(req.Type, s.w.View().String(), start, err)
	return err
}

// reply answers a request of type req with the current frame, or with
// err if it is non-nil.
func (s *session) reply(req string, err error) {
	r := reply{Type: "frame", Request: req, Session: s.id, View: s.w.View().String()}
	if err != nil {
		r.Type, r.Error = "error", err.Error()
	} else {
		var buf bytes.Buffer
		if err := s.w.WriteSVG(&buf); err != nil {
			r.Type, r.Error = "error", err.Error()
		} else {
			r.SVG = buf.String()
			s.metrics.Marks.Set(float64(s.w.Scene().Len()))
		}
	}
	if err := s.conn.WriteJSON(r); err != nil {
		log.Printf("session %s: write: %v", s.id, err)
	}
}
