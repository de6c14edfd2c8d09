// Package calendar provides the pure date arithmetic behind the booking
// calendar: month grids for a 7-wide renderer, day-granularity selectability,
// and month navigation.
package calendar

import "time"

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Direction indicates which way Navigate moves.
type Direction int

const (
	Prev Direction = iota
	Next
)

// DayCells returns the days of the month (1..N) preceded by one zero cell per
// weekday slot before the month's first day, Sunday-first. A renderer can chunk
// the result into rows of seven.
func DayCells(m Month) []int {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one.
	last := time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)

	cells := make([]int, 0, int(first.Weekday())+last.Day())
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, 0)
	}
	for day := 1; day <= last.Day(); day++ {
		cells = append(cells, day)
	}
	return cells
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSelectable reports whether date can still be booked relative to now.
// Comparison happens at day granularity: today remains selectable until
// midnight, any earlier day never is.
func IsSelectable(date, now time.Time) bool {
	return !startOfDay(date).Before(startOfDay(now))
}

// Navigate moves exactly one month in the given direction, rolling over year
// boundaries.
func Navigate(m Month, dir Direction) Month {
	delta := 1
	if dir == Prev {
		delta = -1
	}
	t := time.Date(m.Year, m.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Date builds the midnight UTC time for a day cell of the month. It is the
// inverse of DayCells for non-zero cells.
func Date(m Month, day int) time.Time {
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}
