package admin

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"astromine-sim/internal/events"
	"astromine-sim/internal/sim"
)

type Server struct {
	Sim *sim.Simulator
	tpl *template.Template
	mux *http.ServeMux
}

//go:embed templates/index.html
var content embed.FS

func NewServer(simulator *sim.Simulator) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	s := &Server{Sim: simulator, tpl: tpl, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/state", s.handleState)
	s.mux.HandleFunc("/logs", s.handleLogs)
	s.mux.HandleFunc("/crew-health", s.handleCrewHealth)
	s.mux.HandleFunc("/failures", s.handleFailures)
	s.mux.HandleFunc("/battery-plan", s.handleBatteryPlan)
	s.mux.HandleFunc("/upgrade-battery", s.handleUpgradeBattery)
	s.mux.HandleFunc("/run-process", s.handleRunProcess)
	s.mux.HandleFunc("/sell", s.handleSell)
	s.mux.HandleFunc("/mine", s.handleMine)
	s.mux.HandleFunc("/toggle-charging", s.handleToggleCharging)
	s.mux.HandleFunc("/load-fridge", s.handleLoadFridge)
	s.mux.HandleFunc("/hire", s.handleHire)
	s.mux.HandleFunc("/switch-sector", s.handleSwitchSector)
}

// Handler exposes the mux for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()
	s.tpl.Execute(w, snap)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Snapshot())
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	// Restored saves may carry log entries in whatever order they were
	// persisted; the endpoint always answers newest-first.
	log := s.Sim.Snapshot().Log
	events.SortNewestFirst(log)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(log)
}

func (s *Server) handleCrewHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.CrewHealth())
}

func (s *Server) handleFailures(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.FailureReports())
}

func (s *Server) handleBatteryPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.PlanBatteryUpgrade())
}

func (s *Server) handleUpgradeBattery(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.Sim.UpgradeBattery()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"succeeded": ok,
		"plan":      plan,
	})
}

func (s *Server) handleRunProcess(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing process id", http.StatusBadRequest)
		return
	}
	res := s.Sim.RunProcess(id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"succeeded": res.Succeeded,
		"message":   res.LogMessage,
	})
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")
	qty, _ := strconv.ParseFloat(r.URL.Query().Get("qty"), 64)
	if product == "" || qty <= 0 {
		http.Error(w, "missing product or qty", http.StatusBadRequest)
		return
	}
	res := s.Sim.SellProduct(product, qty)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"succeeded": res.Succeeded,
		"credits":   res.Credits,
		"message":   res.LogMessage,
	})
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	target := s.Sim.MineTarget()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(target)
}

func (s *Server) handleToggleCharging(w http.ResponseWriter, r *http.Request) {
	state := s.Sim.ToggleCharging()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"charging": state})
}

func (s *Server) handleLoadFridge(w http.ResponseWriter, r *http.Request) {
	bars, _ := strconv.ParseFloat(r.URL.Query().Get("bars"), 64)
	liters, _ := strconv.ParseFloat(r.URL.Query().Get("liters"), 64)
	s.Sim.LoadFridge(bars, liters)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHire(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}
	shift, _ := strconv.Atoi(r.URL.Query().Get("shift"))
	member := s.Sim.HireCrew(name, shift)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(member)
}

func (s *Server) handleSwitchSector(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if err := s.Sim.SwitchSector(id); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
