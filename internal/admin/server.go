package admin

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"antsim/internal/sim"
	"antsim/internal/telemetry"
	"antsim/internal/world"
)

// Server exposes a small HTTP control surface over a running simulation.
type Server struct {
	Sim *sim.Simulator
	tpl *template.Template
}

//go:embed templates/index.html
var content embed.FS

func NewServer(simulator *sim.Simulator) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	return &Server{Sim: simulator, tpl: tpl}
}

func (s *Server) routes() {
	http.HandleFunc("/", s.handleIndex)
	http.HandleFunc("/snapshot", s.handleSnapshot)
	http.HandleFunc("/map-data", s.handleMapData)
	http.HandleFunc("/events", s.handleEvents)
	http.HandleFunc("/colony-health", s.handleHealth)
	http.HandleFunc("/drop-food", s.handleDropFood)
	http.HandleFunc("/trigger-raid", s.handleTriggerRaid)
	http.HandleFunc("/reset", s.handleReset)
}

func (s *Server) Start(addr string) error {
	s.routes()
	return http.ListenAndServe(addr, nil)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		State  any
		Health []sim.RoleHealth
		Phase  string
	}{
		State:  s.Sim.Snapshot(),
		Health: s.Sim.Health(),
		Phase:  s.Sim.Phase(),
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Snapshot())
}

func (s *Server) handleMapData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.MapSnapshot())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := s.Sim.RecentEvents()
	if events == nil {
		events = []telemetry.SimEventRow{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Health())
}

func (s *Server) handleDropFood(w http.ResponseWriter, r *http.Request) {
	x, _ := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, _ := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	amount, _ := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if amount <= 0 {
		amount = 50
	}
	s.Sim.AddFood(world.Vec2{X: x, Y: y}, amount)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTriggerRaid(w http.ResponseWriter, r *http.Request) {
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = 3
	}
	s.Sim.TriggerRaid(size)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.Sim.Reset()
	w.WriteHeader(http.StatusNoContent)
}
