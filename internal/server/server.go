// Package server provides the optional local status server: health, a
// websocket feed of session events, session commands and an MJPEG preview.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

const shutdownTimeout = 2 * time.Second

// Config holds the server configuration.
type Config struct {
	Addr string
	// OnCommand handles POST /api/commands. It reports false for a command
	// that was unknown or could not be queued. Nil disables the endpoint.
	OnCommand func(name string) bool
	Logger    *zap.Logger
}

// Server is the local status server. It implements http.Handler, and
// publishes events and preview frames from the session loop.
type Server struct {
	config  Config
	mux     *http.ServeMux
	start   time.Time
	hub     *Hub
	preview *Preview
	logger  *zap.Logger
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config:  config,
		mux:     http.NewServeMux(),
		start:   time.Now(),
		hub:     NewHub(logger),
		preview: NewPreview(),
		logger:  logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.Handle("/api/events", s.hub)
	s.mux.Handle("/api/stream", s.preview)
	if s.config.OnCommand != nil {
		s.mux.HandleFunc("/api/commands", s.handleCommand)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Publish forwards a session event to websocket clients. It never blocks.
func (s *Server) Publish(v any) {
	s.hub.Publish(v)
}

// Update stores the annotated preview frame for MJPEG clients.
func (s *Server) Update(frame *gocv.Mat) {
	s.preview.Update(frame)
}

// Hub returns the event hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"uptime":  time.Since(s.start).String(),
		"clients": s.hub.Clients(),
	})
}

// handleStatus returns the most recent event, or 204 before the first one.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	last := s.hub.Last()
	if last == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(last)
}

type commandRequest struct {
	Command string `json:"command"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Command == "" {
		http.Error(w, "Invalid command", http.StatusBadRequest)
		return
	}
	if !s.config.OnCommand(req.Command) {
		http.Error(w, "Command rejected", http.StatusUnprocessableEntity)
		return
	}
	s.logger.Info("command accepted", zap.String("command", req.Command))
	writeJSON(w, http.StatusAccepted, map[string]string{"command": req.Command})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully and disconnects websocket clients.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("status server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		s.hub.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.hub.Close()
	err := srv.Shutdown(shutdownCtx)
	if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return err
}
