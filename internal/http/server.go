// Package http exposes the JSON API: transactions, budgets, goals,
// payment simulation, monthly summaries, and AI-generated plans.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

type Server struct {
	http.Server

	transactions *services.TransactionService
	budgets      *services.BudgetService
	goals        *services.GoalService
	plans        *services.PlanService

	detector *security.Detector
	headers  *security.HeadersMiddleware
	tracer   *trace.Middleware
	limiter  *ratelimit.Limiter

	summaryCache *cache.ReportCache[core.MonthSummary]
	reportCache  *cache.ReportCache[[]core.BudgetProgress]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
// plans may be nil when no planner is configured; the plan endpoint then
// answers 503.
func NewServer(addr string, tx *services.TransactionService, bu *services.BudgetService, gl *services.GoalService, pl *services.PlanService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		transactions: tx,
		budgets:      bu,
		goals:        gl,
		plans:        pl,

		detector: security.NewDetector(),
		headers:  security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),

		summaryCache: cache.New[core.MonthSummary](100, 5*time.Minute),
		reportCache:  cache.New[[]core.BudgetProgress](100, 5*time.Minute),

		stopCacheCleanup: make(chan struct{}),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("GET /api/budgets/report", s.handleBudgetReport)
	mux.HandleFunc("GET /api/budgets/{id}", s.handleGetBudget)
	mux.HandleFunc("GET /api/budgets/{id}/progress", s.handleBudgetProgress)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("GET /api/goals/{id}", s.handleGetGoal)
	mux.HandleFunc("PUT /api/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	mux.HandleFunc("POST /api/goals/{id}/contributions", s.handleContribute)

	mux.HandleFunc("POST /api/simulations", s.handleSimulate)
	mux.HandleFunc("GET /api/summary", s.handleMonthSummary)
	mux.HandleFunc("POST /api/plan", s.handleGeneratePlan)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.withMiddleware(mux),
	}

	go s.startCacheCleanup()
	return s
}

// withMiddleware wires the chain: security headers, probe rejection, rate
// limiting, then tracing.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	rejectProbes := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Rejected suspicious request",
				"path", r.URL.Path,
				"client_ip", s.detector.ExtractClientIP(r))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		next.ServeHTTP(w, r)
	})

	limited := s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
	})(rejectProbes)

	return s.headers.Middleware(s.tracer.Middleware(limited))
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleaned := s.summaryCache.CleanExpired() + s.reportCache.CleanExpired()
			if cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// invalidateReadModels drops cached summaries and reports after any write
// that changes what they would show.
func (s *Server) invalidateReadModels() {
	s.summaryCache.InvalidatePrefix("summary:")
	s.reportCache.InvalidatePrefix("report:")
}

// Shutdown stops the background routines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
