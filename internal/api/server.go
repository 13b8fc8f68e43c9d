// Package api serves the town state over HTTP. GET endpoints are public
// read-only observation; POST endpoints require a bearer admin key.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/talgya/tiny-town/internal/engine"
	"github.com/talgya/tiny-town/internal/resident"
)

// Server serves the simulation over HTTP. Mu must be the same mutex the
// tick loop holds, so handlers only ever observe state between ticks.
type Server struct {
	Sim      *engine.Simulation
	Mu       *sync.Mutex
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	// OnSnapshot is invoked by the admin snapshot endpoint.
	OnSnapshot func() error
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/residents", s.handleResidents)
	mux.HandleFunc("/api/v1/resident/", s.handleResidentDetail)
	mux.HandleFunc("/api/v1/workplaces", s.handleWorkplaces)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/stats", s.handleStats)

	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set TOWNSIM_CORS_ORIGINS to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("TOWNSIM_CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.Mu.Lock()
	resp := map[string]any{
		"town":     s.Sim.Town.Name,
		"time":     s.Sim.Clock.String(),
		"day":      s.Sim.Clock.ElapsedDays + 1,
		"speed":    s.Sim.Clock.Speed,
		"treasury": s.Sim.Town.Treasury,
		"stats":    s.Sim.Stats,
	}
	s.Mu.Unlock()
	writeJSON(w, resp)
}

type residentSummary struct {
	ID          resident.ID `json:"id"`
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	Happiness   int         `json:"happiness"`
	Money       int         `json:"money"`
	Personality string      `json:"personality"`
	Traits      []string    `json:"traits"`
	Employed    bool        `json:"employed"`
}

func (s *Server) handleResidents(w http.ResponseWriter, _ *http.Request) {
	s.Mu.Lock()
	out := make([]residentSummary, 0, len(s.Sim.Residents))
	for _, r := range s.Sim.Residents {
		out = append(out, residentSummary{
			ID: r.ID, Name: r.Name, Age: r.Age, Happiness: r.Happiness,
			Money: r.Money, Personality: r.Personality, Traits: r.Traits,
			Employed: r.Employed(),
		})
	}
	s.Mu.Unlock()
	writeJSON(w, out)
}

func (s *Server) handleResidentDetail(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/resident/")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		http.Error(w, "bad resident id", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	res, ok := s.Sim.Index[resident.ID(id)]
	var payload []byte
	if ok {
		payload, _ = json.Marshal(res)
	}
	s.Mu.Unlock()

	if !ok {
		http.Error(w, "resident not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.Mu.Lock()
	stats := s.Sim.Stats
	s.Mu.Unlock()
	writeJSON(w, stats)
}

func (s *Server) handleWorkplaces(w http.ResponseWriter, _ *http.Request) {
	type wp struct {
		ID       uint64 `json:"id"`
		Name     string `json:"name"`
		Built    bool   `json:"built"`
		Progress int    `json:"progress"`
		Staff    int    `json:"staff"`
		Treasury int    `json:"company_treasury"`
		Level    int    `json:"level"`
	}
	s.Mu.Lock()
	out := make([]wp, 0, len(s.Sim.Town.Workplaces))
	for _, ww := range s.Sim.Town.Workplaces {
		out = append(out, wp{
			ID: ww.ID, Name: ww.Blueprint.Name, Built: ww.Built,
			Progress: ww.Progress, Staff: len(ww.Staff),
			Treasury: ww.CompanyTreasury, Level: ww.Level,
		})
	}
	s.Mu.Unlock()
	writeJSON(w, out)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= engine.EventCap {
			limit = n
		}
	}
	s.Mu.Lock()
	events := s.Sim.Log.Recent(limit)
	s.Mu.Unlock()
	writeJSON(w, events)
}

// handleSpeed updates the speed multiplier. Out-of-range requests are
// rejected and leave the multiplier unchanged.
func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	err := s.Sim.Clock.SetSpeed(req.Speed)
	speed := s.Sim.Clock.Speed
	s.Mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Info("speed changed", "speed", speed)
	writeJSON(w, map[string]any{"speed": speed})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	if s.OnSnapshot == nil {
		http.Error(w, "snapshots unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := s.OnSnapshot(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "saved"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}
