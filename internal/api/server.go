// Package api exposes current device state over a small local REST API.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/FluidXR/questdoctor/internal/adb"
	"github.com/FluidXR/questdoctor/internal/history"
)

// Server serves device state over HTTP.
type Server struct {
	session *adb.Session
	store   *history.DB
	keep    int
	log     zerolog.Logger
	router  chi.Router
	server  *http.Server
}

// NewServer creates a Server. store may be nil when history recording is
// disabled.
func NewServer(session *adb.Session, store *history.DB, keep int, log zerolog.Logger) *Server {
	s := &Server{
		session: session,
		store:   store,
		keep:    keep,
		log:     log,
		router:  chi.NewRouter(),
	}

	s.setupRoutes()

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/devices", s.handleListDevices)
		r.Get("/devices/{serial}", s.handleGetDevice)
		r.Get("/devices/{serial}/history", s.handleGetHistory)
		r.Post("/devices/{serial}/reboot", s.handleReboot)
	})
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.server.Addr = addr
	s.log.Info().Str("addr", addr).Msg("starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Debug().Err(err).Msg("encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
