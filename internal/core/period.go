package core

import "time"

// Interval is a closed calendar-day range [Start, End]. Both endpoints are
// included when testing membership.
type Interval struct {
	Start Date
	End   Date
}

// Contains reports whether d falls within the interval, endpoints included.
// Comparison happens at day granularity.
func (iv Interval) Contains(d Date) bool {
	day := DateOf(d.Time).Time
	return !day.Before(iv.Start.Time) && !day.After(iv.End.Time)
}

// ResolvePeriod maps a period tag plus a reference instant to the single
// period instance containing that instant.
//
//   - Monthly: first through last calendar day of the reference month.
//   - Weekly: the Monday-first calendar week containing the reference date.
//     Weeks start on Monday everywhere in this codebase.
//   - Yearly: January 1 through December 31 of the reference year.
//
// The resolver never fails for a valid reference instant; an unknown period
// tag falls back to Monthly.
func ResolvePeriod(p Period, ref time.Time) Interval {
	day := DateOf(ref)

	switch p {
	case Weekly:
		// time.Weekday numbers Sunday as 0; shift so Monday is 0.
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		end := start.AddDate(0, 0, 6)
		return Interval{Start: Date{Time: start}, End: Date{Time: end}}
	case Yearly:
		return Interval{
			Start: NewDate(day.Year(), 1, 1),
			End:   NewDate(day.Year(), 12, 31),
		}
	default: // Monthly
		start := NewDate(day.Year(), day.Month(), 1)
		// Day zero of the next month is the last day of this one.
		end := NewDate(day.Year(), day.Month()+1, 0)
		return Interval{Start: start, End: end}
	}
}
