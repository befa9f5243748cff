package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/planner"
)

// handleGeneratePlan produces an AI-generated budget plan for the month
// containing the reference date.
func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	if s.plans == nil {
		writeError(w, http.StatusServiceUnavailable, "planner not configured")
		return
	}

	var payload struct {
		Date  string `json:"date"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	ref, err := parseRefDate(payload.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	plan, err := s.plans.GeneratePlan(r.Context(), ref, sanitizeInput(payload.Notes))
	if err != nil {
		if errors.Is(err, planner.ErrEmptyPlan) {
			writeError(w, http.StatusBadGateway, "planner produced no usable plan")
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
