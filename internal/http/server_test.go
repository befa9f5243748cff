package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/ledger/memory"
	"fintrack/internal/services"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := memory.New()
	srv := NewServer(":0",
		services.NewTransactionService(store, nil),
		services.NewBudgetService(store, core.MatchBudgetPeriod),
		services.NewGoalService(store),
		nil)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv := newTestServer(t)
	rr := doJSON(t, srv, http.MethodGet, "/healthz", "")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestSuspiciousRequestRejected(t *testing.T) {
	srv := newTestServer(t)
	rr := doJSON(t, srv, http.MethodGet, "/api/transactions?q=..%2f..%2fetc/passwd", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for probe request, got %d", rr.Code)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"description":"groceries","amount":"25.00","type":"expense","category":"Food","date":"2024-03-05"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}

	var created struct {
		Transaction transactionJSON `json:"transaction"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Transaction.ID == "" {
		t.Fatal("expected assigned ID")
	}
	if created.Transaction.AmountCents != 2500 {
		t.Errorf("amount_cents = %d, want 2500", created.Transaction.AmountCents)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/transactions/"+created.Transaction.ID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status=%d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/transactions?year=2024&month=3", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status=%d", rr.Code)
	}
	var listed []transactionJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d transactions, want 1", len(listed))
	}

	rr = doJSON(t, srv, http.MethodDelete, "/api/transactions/"+created.Transaction.ID, "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d", rr.Code)
	}
	rr = doJSON(t, srv, http.MethodGet, "/api/transactions/"+created.Transaction.ID, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete status=%d", rr.Code)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed JSON", `{not json`, http.StatusBadRequest},
		{"invalid amount", `{"description":"x","amount":"abc","category":"Food"}`, http.StatusUnprocessableEntity},
		{"missing description", `{"description":"","amount":"1.00","category":"Food"}`, http.StatusUnprocessableEntity},
		{"bad date", `{"description":"x","amount":"1.00","category":"Food","date":"2024-13-99"}`, http.StatusUnprocessableEntity},
		{"bad type", `{"description":"x","amount":"1.00","type":"transfer","category":"Food"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, srv, http.MethodPost, "/api/transactions", tt.body)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestBudgetDuplicateConflict(t *testing.T) {
	srv := newTestServer(t)

	body := `{"category":"Food","limit":"30.00","period":"monthly"}`
	rr := doJSON(t, srv, http.MethodPost, "/api/budgets", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, srv, http.MethodPost, "/api/budgets", body)
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate status=%d, want 409", rr.Code)
	}
}

func TestBudgetReportAndSimulation(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/budgets",
		`{"category":"Food","limit":"30.00","period":"monthly"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create budget status=%d", rr.Code)
	}

	for _, body := range []string{
		`{"description":"groceries","amount":"25.00","category":"Food","date":"2024-03-05"}`,
		`{"description":"snacks","amount":"15.00","category":"Food","date":"2024-03-08"}`,
	} {
		rr = doJSON(t, srv, http.MethodPost, "/api/transactions", body)
		if rr.Code != http.StatusCreated {
			t.Fatalf("create transaction status=%d", rr.Code)
		}
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/budgets/report?date=2024-03-10", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("report status=%d", rr.Code)
	}
	var report []progressJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("report length %d, want 1", len(report))
	}
	if report[0].SpentCents != 4000 || report[0].Percent != 133 {
		t.Errorf("report = spent %d percent %d, want 4000/133",
			report[0].SpentCents, report[0].Percent)
	}
	if report[0].OverageCents != 1000 {
		t.Errorf("overage_cents = %d, want 1000", report[0].OverageCents)
	}

	rr = doJSON(t, srv, http.MethodPost, "/api/simulations",
		`{"amount":"25.00","category":"Food","date":"2024-03-10"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("simulate status=%d", rr.Code)
	}
	var sim simulationJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &sim); err != nil {
		t.Fatalf("decode simulation: %v", err)
	}
	if sim.Outcome != "over_budget" {
		t.Errorf("outcome = %q, want over_budget", sim.Outcome)
	}
	if sim.OverageCents != 3500 {
		t.Errorf("overage_cents = %d, want 3500", sim.OverageCents)
	}

	rr = doJSON(t, srv, http.MethodPost, "/api/simulations",
		`{"amount":"10.00","category":"Travel","date":"2024-03-10"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("simulate status=%d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &sim); err != nil {
		t.Fatalf("decode simulation: %v", err)
	}
	if sim.Outcome != "no_budget_found" {
		t.Errorf("outcome = %q, want no_budget_found", sim.Outcome)
	}
}

func TestMonthSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{
		`{"description":"salary","amount":"2000.00","type":"income","category":"Salary","date":"2024-03-01"}`,
		`{"description":"groceries","amount":"40.00","category":"Food","date":"2024-03-05"}`,
	} {
		rr := doJSON(t, srv, http.MethodPost, "/api/transactions", body)
		if rr.Code != http.StatusCreated {
			t.Fatalf("create transaction status=%d", rr.Code)
		}
	}

	rr := doJSON(t, srv, http.MethodGet, "/api/summary?year=2024&month=3", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status=%d", rr.Code)
	}
	var sum summaryJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.IncomeCents != 200000 || sum.ExpensesCents != 4000 {
		t.Errorf("summary = income %d expenses %d", sum.IncomeCents, sum.ExpensesCents)
	}
	if sum.BalanceCents != 196000 {
		t.Errorf("balance_cents = %d, want 196000", sum.BalanceCents)
	}
}

func TestGoalEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/goals",
		`{"description":"Emergency fund","target_amount":"5000.00"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create goal status=%d body=%s", rr.Code, rr.Body.String())
	}
	var g goalJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &g); err != nil {
		t.Fatalf("decode goal: %v", err)
	}

	rr = doJSON(t, srv, http.MethodPost, "/api/goals/"+g.ID+"/contributions",
		`{"amount":"2500.00"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("contribute status=%d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &g); err != nil {
		t.Fatalf("decode goal: %v", err)
	}
	if g.CurrentAmountCents != 250000 {
		t.Errorf("current_amount_cents = %d, want 250000", g.CurrentAmountCents)
	}
	if g.Achieved {
		t.Error("goal should not be achieved yet")
	}

	rr = doJSON(t, srv, http.MethodPost, "/api/goals/"+g.ID+"/contributions",
		`{"amount":"2500.00"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("contribute status=%d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &g); err != nil {
		t.Fatalf("decode goal: %v", err)
	}
	if !g.Achieved {
		t.Error("goal should be achieved")
	}
}

func TestPlanEndpointWithoutPlanner(t *testing.T) {
	srv := newTestServer(t)
	rr := doJSON(t, srv, http.MethodPost, "/api/plan", `{}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("plan status=%d, want 503", rr.Code)
	}
}
