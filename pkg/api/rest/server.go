// Package rest serves the router and session manager's administrative
// surface over HTTP: a single POST /v1/router endpoint dispatching on
// a body field, plus /health and /ready, mirroring the teacher's
// pkg/api/rest single-mux-per-concern style generalized to one
// action-dispatch endpoint, as the original engine's apiCallbacks does.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flowgate/flowgate/pkg/router"
	"github.com/flowgate/flowgate/pkg/session"
)

// Server is the administrative HTTP server.
type Server struct {
	addr     string
	router   *router.Router
	sessions *session.Manager
	mux      *http.ServeMux
	server   *http.Server
}

// Config configures the server.
type Config struct {
	Addr     string
	Router   *router.Router
	Sessions *session.Manager
}

// NewServer creates a new administrative API server.
func NewServer(cfg Config) *Server {
	s := &Server{
		addr:     cfg.Addr,
		router:   cfg.Router,
		sessions: cfg.Sessions,
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/ready", s.handleReady)
	s.mux.HandleFunc("/v1/router", s.handleRouterAction)
}

// Start starts the server. Blocks until Shutdown is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ready := s.router != nil && s.sessions != nil
	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]string{
		"status": readyStatus(ready),
		"time":   time.Now().Format(time.RFC3339),
	})
}

func readyStatus(ready bool) string {
	if ready {
		return "ready"
	}
	return "not ready"
}

// apiResponse is the wire shape of every /v1/router response.
type apiResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// handleRouterAction decodes {"action": ..., ...fields} and dispatches
// to either the router or the session manager depending on the action
// name, matching routerctl's "route"/"event"/"session" subcommand
// groups on the client side.
func (s *Server) handleRouterAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "Error: invalid request body"})
		return
	}

	action, _ := fields["action"].(string)
	switch action {
	case "set", "get", "delete", "change_priority", "enqueue_event":
		result := s.router.Dispatch(r.Context(), action, fields)
		writeJSON(w, http.StatusOK, apiResponse{Message: result.Message, Data: result.Data})
	case "session_create", "session_get", "session_list", "session_delete", "session_delete_all":
		writeJSON(w, http.StatusOK, s.dispatchSession(action, fields))
	default:
		writeJSON(w, http.StatusOK, apiResponse{Message: fmt.Sprintf("Invalid action '%v'", action)})
	}
}

func writeJSON(w http.ResponseWriter, code int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
