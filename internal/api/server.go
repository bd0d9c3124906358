// Package api provides a read-only HTTP API for observing a simulation:
// current status, metric histories, and the roster. It never mutates the
// engine; callers serve a finished run or poll between Step calls.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/talgya/popsim/internal/sim"
)

// Server serves population state over HTTP.
type Server struct {
	Pop  *sim.Population
	Port int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/persons", s.handlePersons)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	births := s.Pop.BirthsHistory()
	deaths := s.Pop.DeathsHistory()
	meanAge := s.Pop.MeanAgeHistory()

	status := map[string]any{
		"year":       s.Pop.Year(),
		"population": len(s.Pop.Persons()),
		"polygamy":   s.Pop.Environment().Polygamy,
	}
	if n := len(births); n > 0 {
		status["births_last_year"] = births[n-1]
		status["deaths_last_year"] = deaths[n-1]
		status["mean_age"] = meanAge[n-1]
	}
	writeJSON(w, status)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"births":     s.Pop.BirthsHistory(),
		"deaths":     s.Pop.DeathsHistory(),
		"population": s.Pop.PopulationHistory(),
		"mean_age":   s.Pop.MeanAgeHistory(),
	})
}

// personView is the JSON shape of a roster entry.
type personView struct {
	ID      uint64    `json:"id"`
	Age     uint32    `json:"age"`
	Sex     string    `json:"sex"`
	Genome  [2]uint64 `json:"genome"`
	Partner *uint64   `json:"partner,omitempty"`
}

func (s *Server) handlePersons(w http.ResponseWriter, r *http.Request) {
	people := s.Pop.Persons()

	// Optional ?limit=N to keep payloads sane on big rosters.
	limit := len(people)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < limit {
			limit = n
		}
	}

	views := make([]personView, 0, limit)
	for i := 0; i < limit; i++ {
		p := &people[i]
		view := personView{
			ID:     uint64(p.ID),
			Age:    p.Age,
			Sex:    sexName(p.Sex),
			Genome: [2]uint64{p.Genome.W0, p.Genome.W1},
		}
		if id, ok := p.Marital.Partner(); ok {
			pid := uint64(id)
			view.Partner = &pid
		}
		views = append(views, view)
	}

	writeJSON(w, map[string]any{
		"total":   len(people),
		"persons": views,
	})
}

func sexName(s sim.Sex) string {
	if s == sim.SexMale {
		return "male"
	}
	return "female"
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
