package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

type budgetPayload struct {
	Category string `json:"category"`
	Limit    string `json:"limit"`
	Period   string `json:"period"`
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var payload budgetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	limit, err := parseAmount(payload.Limit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid limit")
		return
	}

	b := core.Budget{
		Category: sanitizeInput(payload.Category),
		Limit:    limit,
		Period:   core.Period(strings.TrimSpace(payload.Period)),
	}

	created, err := s.budgets.CreateBudget(r.Context(), b)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidateReadModels()
	writeJSON(w, http.StatusCreated, toBudgetJSON(created))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.ListBudgets(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]budgetJSON, len(budgets))
	for i, b := range budgets {
		out[i] = toBudgetJSON(b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	b, err := s.budgets.GetBudget(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetJSON(b))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var payload budgetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	limit, err := parseAmount(payload.Limit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid limit")
		return
	}

	b := core.Budget{
		ID:       r.PathValue("id"),
		Category: sanitizeInput(payload.Category),
		Limit:    limit,
		Period:   core.Period(strings.TrimSpace(payload.Period)),
	}
	if err := s.budgets.UpdateBudget(r.Context(), b); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidateReadModels()
	writeJSON(w, http.StatusOK, toBudgetJSON(b))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.DeleteBudget(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidateReadModels()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBudgetProgress(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRefDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}
	p, err := s.budgets.Progress(r.Context(), r.PathValue("id"), ref)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressJSON(p))
}

func (s *Server) handleBudgetReport(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRefDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	// Only the implicit "now" report is cached; explicit dates bypass it.
	cacheable := strings.TrimSpace(r.URL.Query().Get("date")) == ""
	key := cacheKey("report", ref.Year(), int(ref.Month()))
	if cacheable {
		if cached, ok := s.reportCache.Get(key); ok {
			writeReport(w, cached)
			return
		}
	}

	report, err := s.budgets.Report(r.Context(), ref)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if cacheable {
		s.reportCache.Set(key, report)
	}
	writeReport(w, report)
}

func writeReport(w http.ResponseWriter, report []core.BudgetProgress) {
	out := make([]progressJSON, len(report))
	for i, p := range report {
		out[i] = toProgressJSON(p)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSimulate checks a hypothetical payment without recording anything.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Amount   string `json:"amount"`
		Category string `json:"category"`
		Date     string `json:"date"`
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
	ref, err := parseRefDate(payload.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	sim, err := s.budgets.Simulate(r.Context(), amount, sanitizeInput(payload.Category), ref)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSimulationJSON(sim))
}
