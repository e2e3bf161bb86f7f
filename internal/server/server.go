package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/nakshatra/internal/app"
	"github.com/ayusman/nakshatra/internal/gesture"
	"github.com/ayusman/nakshatra/internal/server/api"
	"github.com/ayusman/nakshatra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App

	// OnActivate is forwarded to the profile API; it is called when a
	// profile becomes active so its settings reach the running pipeline.
	OnActivate func(*store.Profile) error
}

// Server exposes the control pipeline over HTTP: a WebSocket stream of
// gesture and camera-state events, the tuning-profile API, and a camera
// debug stream.
type Server struct {
	config  Config
	mux     *http.ServeMux
	control *ControlHandler
	start   time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config:  config,
		mux:     http.NewServeMux(),
		control: NewControlHandler(),
		start:   time.Now(),
	}
	s.setupRoutes()
	if config.App != nil {
		s.forwardEvents(config.App.Controller().Emitter())
	}
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/control", s.control)

	if s.config.App != nil {
		s.mux.HandleFunc("/api/state", s.handleState)

		if s.config.App.Camera() != nil {
			s.mux.Handle("/api/stream", NewStreamHandler(s.config.App.Camera()))
		}
	}

	if s.config.Store != nil {
		profileHandler := api.NewProfileHandler(s.config.Store)
		profileHandler.OnActivate = s.config.OnActivate
		s.mux.Handle("/api/profiles", profileHandler)
		s.mux.Handle("/api/profiles/", profileHandler)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// forwardEvents relays gesture pipeline events to connected WebSocket
// clients.
func (s *Server) forwardEvents(emitter *gesture.Emitter) {
	emitter.On(gesture.EventUpdate, func(payload any) {
		s.control.Broadcast("update", payload)
	})
	emitter.On(gesture.EventStatus, func(payload any) {
		s.control.Broadcast("status", payload)
	})
	emitter.On(gesture.EventError, func(payload any) {
		// The payload is an error value, which encoding/json renders as
		// an empty object. Send the message text instead.
		if err, ok := payload.(error); ok {
			payload = map[string]string{"message": err.Error()}
		}
		s.control.Broadcast("error", payload)
	})
}

// PushState broadcasts a render snapshot to connected clients. Intended as
// the App's RenderHook.
func (s *Server) PushState(snap app.Snapshot) {
	s.control.Broadcast("state", snap)
}

// Control returns the WebSocket control handler.
func (s *Server) Control() *ControlHandler {
	return s.control
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

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state with the current pipeline
// state. POST toggles tracking on or off.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	a := s.config.App

	switch r.Method {
	case http.MethodGet:
		// fall through below
	case http.MethodPost:
		var req struct {
			Enabled *bool `json:"enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		a.SetEnabled(*req.Enabled)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := a.Snapshot()
	response := map[string]interface{}{
		"running":   a.IsRunning(),
		"enabled":   a.IsEnabled(),
		"camera":    snap.Camera,
		"selection": snap.Selection,
		"stars":     a.Starfield().Count(),
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
