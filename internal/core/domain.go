package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Monthly Period = "monthly"
	Weekly  Period = "weekly"
	Yearly  Period = "yearly"
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

type (
	// Period is a recurring calendar-aligned interval used to scope budget
	// limits and spend aggregation.
	Period string

	// TransactionType classifies a transaction as money out or money in.
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is one ledger record. Immutable once created except for
	// deletion.
	Transaction struct {
		ID          string
		Description string
		Amount      Money
		Type        TransactionType
		Category    string
		Date        Date
	}

	// Budget caps spending for one category over one recurring period.
	// The spent figure is never stored on the budget; it is recomputed from
	// the live transaction collection on every read.
	Budget struct {
		ID       string
		Category string
		Limit    Money
		Period   Period
	}

	// Goal is a savings target. Goals are independent of transactions and
	// budgets; progress moves only through explicit contributions.
	Goal struct {
		ID            string
		Description   string
		TargetAmount  Money
		CurrentAmount Money
		Deadline      Date // zero value means no deadline
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as an int (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// IsEmpty returns true if the date is zero (used for optional dates).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (p Period) Validate() error {
	switch p {
	case Monthly, Weekly, Yearly:
		return nil
	default:
		return ErrInvalidPeriod
	}
}

func (t TransactionType) Validate() error {
	switch t {
	case Expense, Income:
		return nil
	default:
		return ErrInvalidType
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NormalizeCategory strips surrounding whitespace so stored and queried
// categories compare with plain equality. Matching stays case-sensitive.
func NormalizeCategory(s string) string {
	return strings.TrimSpace(s)
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if NormalizeCategory(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if NormalizeCategory(b.Category) == "" {
		return ErrEmptyCategory
	}
	if err := b.Limit.Validate(); err != nil {
		return err
	}
	if err := b.Period.Validate(); err != nil {
		return err
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(g.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !g.Deadline.IsEmpty() {
		if err := g.Deadline.Validate(); err != nil {
			return err
		}
	}
	return nil
}
