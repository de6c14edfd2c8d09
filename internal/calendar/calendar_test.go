package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayCells(t *testing.T) {
	tests := []struct {
		name        string
		month       Month
		wantLeading int
		wantLastDay int
	}{
		{
			// 2025-09-01 is a Monday, so one Sunday placeholder.
			name:        "September 2025",
			month:       Month{Year: 2025, Month: time.September},
			wantLeading: 1,
			wantLastDay: 30,
		},
		{
			// 2026-02-01 is a Sunday, no placeholders.
			name:        "February 2026",
			month:       Month{Year: 2026, Month: time.February},
			wantLeading: 0,
			wantLastDay: 28,
		},
		{
			// Leap year February.
			name:        "February 2028",
			month:       Month{Year: 2028, Month: time.February},
			wantLeading: 2,
			wantLastDay: 29,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := DayCells(tt.month)

			leading := 0
			for _, c := range cells {
				if c != 0 {
					break
				}
				leading++
			}
			require.Equal(t, tt.wantLeading, leading, "leading placeholders")
			require.Equal(t, tt.wantLastDay, cells[len(cells)-1], "last cell")
			require.Equal(t, 1, cells[leading], "first day cell")
			for i, c := range cells[leading:] {
				require.Equal(t, i+1, c, "cells not sequential: %v", cells)
			}
		})
	}
}

func TestIsSelectable(t *testing.T) {
	now := time.Date(2026, 2, 8, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"yesterday", time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), false},
		{"today at midnight", time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC), true},
		{"today later than now", time.Date(2026, 2, 8, 23, 0, 0, 0, time.UTC), true},
		{"tomorrow", time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), true},
		{"last month", time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsSelectable(tt.date, now), "IsSelectable(%v)", tt.date)
		})
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name string
		from Month
		dir  Direction
		want Month
	}{
		{"forward mid-year", Month{2026, time.May}, Next, Month{2026, time.June}},
		{"backward mid-year", Month{2026, time.May}, Prev, Month{2026, time.April}},
		{"forward across year end", Month{2025, time.December}, Next, Month{2026, time.January}},
		{"backward across year start", Month{2026, time.January}, Prev, Month{2025, time.December}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Navigate(tt.from, tt.dir))
		})
	}
}

func TestNavigateRoundTrip(t *testing.T) {
	m := Month{Year: 2026, Month: time.February}
	for i := 0; i < 24; i++ {
		m = Navigate(m, Next)
	}
	for i := 0; i < 24; i++ {
		m = Navigate(m, Prev)
	}
	require.Equal(t, Month{Year: 2026, Month: time.February}, m)
}

func TestDateInvertsDayCells(t *testing.T) {
	m := Month{Year: 2026, Month: time.February}
	for _, day := range DayCells(m) {
		if day == 0 {
			continue
		}
		d := Date(m, day)
		require.Equal(t, day, d.Day())
		require.Equal(t, m.Month, d.Month())
		require.Equal(t, m.Year, d.Year())
	}
}
