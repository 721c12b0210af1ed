package admin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"orrery-sim/internal/config"
	"orrery-sim/internal/logging"
	"orrery-sim/internal/sim"
)

// Server exposes the running simulation over HTTP: scene snapshots, spawn and
// destroy controls, chaos toggling, and a websocket scene stream.
type Server struct {
	Sim      *sim.Simulator
	upgrader websocket.Upgrader

	// StreamInterval is the websocket push period. Defaults to one second.
	StreamInterval time.Duration
}

func NewServer(s *sim.Simulator) *Server {
	return &Server{
		Sim:            s,
		upgrader:       websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		StreamInterval: time.Second,
	}
}

func (s *Server) routes() {
	http.HandleFunc("/status", s.handleStatus)
	http.HandleFunc("/scene", s.handleScene)
	http.HandleFunc("/scene/ws", s.handleSceneWS)
	http.HandleFunc("/toggle-chaos", s.handleToggleChaos)
	http.HandleFunc("/spawn", s.handleSpawn)
	http.HandleFunc("/destroy", s.handleDestroy)
}

func (s *Server) Start(addr string) error {
	s.routes()
	return http.ListenAndServe(addr, nil)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"system_id": s.Sim.SystemID(),
		"chaos":     s.Sim.Chaos(),
		"visuals":   len(s.Sim.SceneSnapshot()),
	})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.SceneSnapshot())
}

func (s *Server) handleToggleChaos(w http.ResponseWriter, r *http.Request) {
	state := s.Sim.ToggleChaos()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"chaos": state})
}

func (s *Server) handleSpawn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var spec config.BodySpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := s.Sim.SpawnRogue(spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

func (s *Server) handleDestroy(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	if err := s.Sim.Destroy(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSceneWS streams scene snapshots over a websocket until the client
// disconnects or the write fails.
func (s *Server) handleSceneWS(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	interval := s.StreamInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := conn.WriteJSON(s.Sim.SceneSnapshot()); err != nil {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := conn.WriteJSON(s.Sim.SceneSnapshot()); err != nil {
				return
			}
		}
	}
}
