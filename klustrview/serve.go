// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/klustr/go-klustr/internal/config"
	"github.com/klustr/go-klustr/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve widgets as an interactive page",
	Long: `Serve starts an HTTP server. GET / is a page that draws the widget and
forwards pointer events over the websocket at /ws. Each websocket
connection is one widget session.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "listen `address` (default from config)")
	f.StringP("input", "i", "", "render widget input from `file` when a session opens")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	input, _ := cmd.Flags().GetString("input")
	cfg, err := loadConfig(func(c *config.Config) {
		if addr != "" {
			c.Addr = addr
		}
		if input != "" {
			c.Input = input
		}
	})
	if err != nil {
		return err
	}

	var initial []byte
	if cfg.Input != "" {
		// Parse once up front so a bad file fails now rather
		// than in every session.
		if initial, _, err = readInput(cfg.Input); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newServer(cfg, initial).router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown(srv, 5*time.Second)
	}()

	log.Printf("listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// shutdown gracefully stops srv, waiting up to timeout for open
// requests. Sessions still open at the deadline are cut off.
func shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	if err != nil {
		log.Printf("shutdown: %v", err)
	}
	return err
}

// server serves widget sessions.
type server struct {
	cfg      *config.Config
	initial  []byte
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader
	router   chi.Router
}

func newServer(cfg *config.Config, initial []byte) *server {
	s := &server{cfg: cfg, initial: initial, metrics: metrics.New()}
	if len(cfg.AllowedOrigins) > 0 {
		s.upgrader.CheckOrigin = s.checkOrigin
	}
	s.router = s.buildRouter()
	return s
}

func (s *server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleSession)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if s.cfg.Metrics {
		r.Method("GET", "/metrics", s.metrics.Handler())
	}
	return r
}

// checkOrigin accepts websocket connections from the configured
// origins. "*" accepts any origin.
func (s *server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, s.cfg); err != nil {
		log.Printf("page: %v", err)
	}
}

func (s *server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sess := newSession(conn, s.cfg, s.metrics)
	s.metrics.Sessions.Inc()
	defer s.metrics.Sessions.Dec()
	log.Printf("session %s: open from %s", sess.id, r.RemoteAddr)
	defer log.Printf("session %s: closed", sess.id)

	sess.run(s.initial)
}
