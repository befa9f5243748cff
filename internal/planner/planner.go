package planner

import (
	"context"
	"errors"
)

// ErrEmptyPlan is returned when the model answered but produced no usable plan.
var ErrEmptyPlan = errors.New("planner returned an empty plan")

// IncomeSource is a single recurring income stream for the planning window.
type IncomeSource struct {
	Source      string `json:"source"`
	AmountCents int64  `json:"amount_cents"`
}

// ExpenseSnapshot summarizes spending in one category over the window.
type ExpenseSnapshot struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
}

// BudgetSnapshot is a configured budget with its current consumption.
type BudgetSnapshot struct {
	Category   string `json:"category"`
	Period     string `json:"period"`
	LimitCents int64  `json:"limit_cents"`
	SpentCents int64  `json:"spent_cents"`
	Percent    int    `json:"percent"`
}

// GoalSnapshot is a savings goal with its progress.
type GoalSnapshot struct {
	Description  string `json:"description"`
	TargetCents  int64  `json:"target_cents"`
	CurrentCents int64  `json:"current_cents"`
	Deadline     string `json:"deadline,omitempty"`
}

// PlanRequest carries the financial picture the plan is built from.
type PlanRequest struct {
	PeriodStart string            `json:"period_start"`
	PeriodEnd   string            `json:"period_end"`
	Income      []IncomeSource    `json:"income,omitempty"`
	Expenses    []ExpenseSnapshot `json:"expenses,omitempty"`
	Budgets     []BudgetSnapshot  `json:"budgets,omitempty"`
	Goals       []GoalSnapshot    `json:"goals,omitempty"`
	Notes       string            `json:"additional_notes,omitempty"`
}

type Plan struct {
	Title      string     `json:"title"`
	Categories []Category `json:"categories"`
	Notes      []Note     `json:"notes,omitempty"`
}

type Category struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	Items []Item `json:"items"`
}

type Item struct {
	Title       string `json:"title"`
	AmountCents int64  `json:"amount_cents"`
	Priority    string `json:"priority"`
}

type Note struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// Planner generates a financial plan from a snapshot of the user's finances.
type Planner interface {
	GeneratePlan(ctx context.Context, req PlanRequest) (*Plan, error)
}
