package schedule

import "time"

// RepeatType selects how a base reservation expands into a series.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
)

// Valid reports whether the repeat type is one of the supported values.
func (r RepeatType) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	}
	return false
}

// Occurrence is one generated member of a recurring series. Times are shared
// across the whole series; per-occurrence time variation is not supported.
type Occurrence struct {
	Date  time.Time
	Times []string
}

// Expand generates the future occurrences implied by the repeat type, not
// including the base date itself. It is pure: the caller submits each result
// through the conflict-checked commit path.
//
// Monthly expansion keeps the base day-of-month and clamps to the last day of
// shorter target months (Jan 31 monthly yields Feb 28, not Mar 3).
func Expand(base time.Time, times []string, rule RepeatType, count int) []Occurrence {
	if rule == RepeatNone || count <= 0 {
		return nil
	}

	occ := make([]Occurrence, 0, count)
	for i := 1; i <= count; i++ {
		var d time.Time
		switch rule {
		case RepeatDaily:
			d = base.AddDate(0, 0, i)
		case RepeatWeekly:
			d = base.AddDate(0, 0, 7*i)
		case RepeatMonthly:
			d = addMonthsClamped(base, i)
		default:
			return nil
		}
		occ = append(occ, Occurrence{Date: d, Times: times})
	}
	return occ
}

// addMonthsClamped advances t by the given number of months, clamping the
// day-of-month instead of letting time.AddDate overflow into the next month.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	// Day 0 of the following month is the target month's last day.
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
