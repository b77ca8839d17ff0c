// Package server provides the HTTP surface for the chhaya overlay:
// health, rendered-frame streaming, live landmarks and profile management.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/chhaya/internal/detector"
	"github.com/ayusman/chhaya/internal/render"
	"github.com/ayusman/chhaya/internal/server/api"
	"github.com/ayusman/chhaya/internal/store"
)

// FrameSource supplies the latest rendered frame as JPEG bytes.
type FrameSource interface {
	LatestFrame() (jpeg []byte, stamp time.Time, ok bool)
}

// HandSource supplies the latest tracking result.
type HandSource interface {
	LatestHands() ([]detector.HandLandmarks, time.Time)
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Frames    FrameSource
	Hands     HandSource

	// OnSettings is invoked when a profile is activated, so the running
	// pipeline picks the new settings up between frames.
	OnSettings func(render.Settings)
}

// Server represents the HTTP server for the chhaya application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		profileHandler := api.NewProfileHandler(s.config.Store, s.config.OnSettings)
		s.mux.Handle("/api/profiles", profileHandler)
		s.mux.Handle("/api/profiles/", profileHandler)
	}

	if s.config.Frames != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Frames))
	}

	if s.config.Hands != nil {
		s.mux.Handle("/api/landmarks", NewLandmarksHandler(s.config.Hands))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
