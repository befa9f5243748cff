package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
)

type transactionPayload struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	amount, err := parseAmount(payload.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	date := core.DateOf(time.Now())
	if strings.TrimSpace(payload.Date) != "" {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(payload.Date))
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = core.DateOf(parsed)
	}

	txType := core.TransactionType(strings.TrimSpace(payload.Type))
	if payload.Type == "" {
		txType = core.Expense
	}

	t := core.Transaction{
		Description: sanitizeInput(payload.Description),
		Amount:      amount,
		Type:        txType,
		Category:    sanitizeInput(payload.Category),
		Date:        date,
	}

	created, alerts, err := s.transactions.CreateTransaction(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidateReadModels()

	resp := struct {
		Transaction transactionJSON `json:"transaction"`
		Alerts      []progressJSON  `json:"alerts,omitempty"`
	}{Transaction: toTransactionJSON(created)}
	for _, a := range alerts {
		resp.Alerts = append(resp.Alerts, toProgressJSON(a))
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Year+month narrows the listing to one calendar month.
	if query.Get("year") != "" || query.Get("month") != "" {
		year, month := parseMonthParams(query)
		txs, err := s.transactions.ListTransactionsByMonth(r.Context(), year, month)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionsJSON(txs))
		return
	}

	txs, err := s.transactions.ListTransactions(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionsJSON(txs))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.transactions.GetTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionJSON(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidateReadModels()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	year, month := parseMonthParams(r.URL.Query())
	key := cacheKey("summary", year, month)

	if cached, ok := s.summaryCache.Get(key); ok {
		writeJSON(w, http.StatusOK, toSummaryJSON(cached))
		return
	}

	summary, err := s.transactions.MonthSummary(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.summaryCache.Set(key, summary)
	writeJSON(w, http.StatusOK, toSummaryJSON(summary))
}
