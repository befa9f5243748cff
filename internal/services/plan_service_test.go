package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/ledger/memory"
	"fintrack/internal/planner"
)

type capturingPlanner struct {
	req  planner.PlanRequest
	plan *planner.Plan
	err  error
}

func (c *capturingPlanner) GeneratePlan(_ context.Context, req planner.PlanRequest) (*planner.Plan, error) {
	c.req = req
	return c.plan, c.err
}

func TestGeneratePlanBuildsSnapshot(t *testing.T) {
	store := memory.New()
	seedMarchFixture(t, store)
	ctx := context.Background()

	require.NoError(t, store.CreateGoal(ctx, core.Goal{
		ID:            "g1",
		Description:   "Emergency fund",
		TargetAmount:  core.Money{Cents: 500000},
		CurrentAmount: core.Money{Cents: 120000},
	}))

	fake := &capturingPlanner{plan: &planner.Plan{Title: "March plan"}}
	svc := NewPlanService(store, fake)

	ref := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	plan, err := svc.GeneratePlan(ctx, ref, "keep food costs down")
	require.NoError(t, err)
	require.Equal(t, "March plan", plan.Title)

	req := fake.req
	require.Equal(t, "2024-03-01", req.PeriodStart)
	require.Equal(t, "2024-03-31", req.PeriodEnd)
	require.Equal(t, "keep food costs down", req.Notes)

	require.Len(t, req.Income, 1)
	require.Equal(t, int64(200000), req.Income[0].AmountCents)

	require.Len(t, req.Expenses, 1)
	require.Equal(t, "Food", req.Expenses[0].Category)
	require.Equal(t, int64(4000), req.Expenses[0].AmountCents)

	require.Len(t, req.Budgets, 1)
	require.Equal(t, 133, req.Budgets[0].Percent)

	require.Len(t, req.Goals, 1)
	require.Equal(t, int64(120000), req.Goals[0].CurrentCents)
	require.Empty(t, req.Goals[0].Deadline)
}

func TestGeneratePlanPropagatesPlannerError(t *testing.T) {
	store := memory.New()
	fake := &capturingPlanner{err: planner.ErrEmptyPlan}
	svc := NewPlanService(store, fake)

	_, err := svc.GeneratePlan(context.Background(), time.Now(), "")
	require.ErrorIs(t, err, planner.ErrEmptyPlan)
}
