package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
)

type goalPayload struct {
	Description  string `json:"description"`
	TargetAmount string `json:"target_amount"`
	Deadline     string `json:"deadline"`
}

func (p goalPayload) toGoal() (core.Goal, error) {
	target, err := parseAmount(p.TargetAmount)
	if err != nil {
		return core.Goal{}, core.ErrInvalidAmount
	}

	g := core.Goal{
		Description:  sanitizeInput(p.Description),
		TargetAmount: target,
	}
	if strings.TrimSpace(p.Deadline) != "" {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(p.Deadline))
		if err != nil {
			return core.Goal{}, core.ErrInvalidDate
		}
		g.Deadline = core.DateOf(parsed)
	}
	return g, nil
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var payload goalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	g, err := payload.toGoal()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.goals.CreateGoal(r.Context(), g)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalJSON(created))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.ListGoals(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]goalJSON, len(goals))
	for i, g := range goals {
		out[i] = toGoalJSON(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.goals.GetGoal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalJSON(g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var payload goalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	current, err := s.goals.GetGoal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	g, err := payload.toGoal()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	g.ID = current.ID
	g.CurrentAmount = current.CurrentAmount

	if err := s.goals.UpdateGoal(r.Context(), g); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalJSON(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.DeleteGoal(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Amount string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	amount, err := parseAmount(payload.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	g, err := s.goals.Contribute(r.Context(), r.PathValue("id"), amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalJSON(g))
}
