package core

import (
	"testing"
	"time"
)

func TestResolvePeriodMonthly(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart Date
		wantEnd   Date
	}{
		{
			name:      "leap year february",
			ref:       time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC),
			wantStart: NewDate(2024, 2, 1),
			wantEnd:   NewDate(2024, 2, 29),
		},
		{
			name:      "non-leap february",
			ref:       time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC),
			wantStart: NewDate(2023, 2, 1),
			wantEnd:   NewDate(2023, 2, 28),
		},
		{
			name:      "december",
			ref:       time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
			wantStart: NewDate(2024, 12, 1),
			wantEnd:   NewDate(2024, 12, 31),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := ResolvePeriod(Monthly, tt.ref)
			if !iv.Start.Equal(tt.wantStart.Time) || !iv.End.Equal(tt.wantEnd.Time) {
				t.Errorf("ResolvePeriod(Monthly, %v) = [%v, %v], want [%v, %v]",
					tt.ref, iv.Start, iv.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolvePeriodWeeklyMondayFirst(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart Date
		wantEnd   Date
	}{
		{
			name:      "wednesday mid-week",
			ref:       time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC), // Wed
			wantStart: NewDate(2024, 3, 4),                          // Mon
			wantEnd:   NewDate(2024, 3, 10),                         // Sun
		},
		{
			name:      "monday is its own week start",
			ref:       time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			wantStart: NewDate(2024, 3, 4),
			wantEnd:   NewDate(2024, 3, 10),
		},
		{
			name:      "sunday belongs to the preceding monday",
			ref:       time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC),
			wantStart: NewDate(2024, 3, 4),
			wantEnd:   NewDate(2024, 3, 10),
		},
		{
			name:      "week crossing a month boundary",
			ref:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), // Mon Apr 1
			wantStart: NewDate(2024, 4, 1),
			wantEnd:   NewDate(2024, 4, 7),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := ResolvePeriod(Weekly, tt.ref)
			if !iv.Start.Equal(tt.wantStart.Time) || !iv.End.Equal(tt.wantEnd.Time) {
				t.Errorf("ResolvePeriod(Weekly, %v) = [%v, %v], want [%v, %v]",
					tt.ref, iv.Start, iv.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolvePeriodYearly(t *testing.T) {
	iv := ResolvePeriod(Yearly, time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC))
	if !iv.Start.Equal(NewDate(2024, 1, 1).Time) {
		t.Errorf("yearly start = %v, want 2024-01-01", iv.Start)
	}
	if !iv.End.Equal(NewDate(2024, 12, 31).Time) {
		t.Errorf("yearly end = %v, want 2024-12-31", iv.End)
	}
}

func TestIntervalContainsInclusiveEndpoints(t *testing.T) {
	iv := Interval{Start: NewDate(2024, 2, 1), End: NewDate(2024, 2, 29)}

	cases := []struct {
		d    Date
		want bool
	}{
		{NewDate(2024, 2, 1), true},
		{NewDate(2024, 2, 29), true},
		{NewDate(2024, 2, 15), true},
		{NewDate(2024, 1, 31), false},
		{NewDate(2024, 3, 1), false},
	}
	for i, tc := range cases {
		if got := iv.Contains(tc.d); got != tc.want {
			t.Errorf("case %d: Contains(%v) = %v, want %v", i, tc.d, got, tc.want)
		}
	}
}

func TestIntervalContainsIgnoresTimeOfDay(t *testing.T) {
	iv := Interval{Start: NewDate(2024, 2, 1), End: NewDate(2024, 2, 29)}
	late := Date{Time: time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)}
	if !iv.Contains(late) {
		t.Errorf("a timestamp on the last day must still be inside the interval")
	}
}
