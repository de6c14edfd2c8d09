// Package timegrid defines the fixed set of bookable time labels for one
// lab-day. Every deployment must agree on this list exactly, since stored
// reservations reference labels by value.
package timegrid

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrEmptySelection = errors.New("at least one time slot is required")
	ErrDuplicateLabel = errors.New("duplicate time slot")
	ErrUnknownLabel   = errors.New("unknown time slot")
)

// labels is the lab-day class-period grid. The stride is irregular on purpose:
// periods are 50 minutes with breaks after every second period and a lunch and
// dinner gap, so the values are enumerated rather than derived.
var labels = []string{
	"07:00", "07:50", "08:40", "09:50", "10:40", "11:30",
	"13:00", "13:50", "14:40", "15:50", "16:40", "17:30",
	"19:00", "19:50", "20:40", "21:30",
}

// index maps each label to its position in the grid.
var index = func() map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}()

// Labels returns the full grid in declaration order. The returned slice is a
// copy and may be modified by the caller.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Size returns the number of slots in a lab-day.
func Size() int {
	return len(labels)
}

// Contains reports whether the label is part of the grid.
func Contains(label string) bool {
	_, ok := index[label]
	return ok
}

// Index returns the position of the label in the grid, or -1 if unknown.
func Index(label string) int {
	i, ok := index[label]
	if !ok {
		return -1
	}
	return i
}

// Sort orders the given labels in place by grid position. Unknown labels sort
// after all known ones.
func Sort(ls []string) {
	sort.SliceStable(ls, func(i, j int) bool {
		a, b := Index(ls[i]), Index(ls[j])
		if a == -1 {
			return false
		}
		if b == -1 {
			return true
		}
		return a < b
	})
}

// Validate checks that the selection is non-empty, free of duplicates, and
// drawn entirely from the grid.
func Validate(ls []string) error {
	if len(ls) == 0 {
		return ErrEmptySelection
	}
	seen := make(map[string]struct{}, len(ls))
	for _, l := range ls {
		if !Contains(l) {
			return fmt.Errorf("%w: %q", ErrUnknownLabel, l)
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, l)
		}
		seen[l] = struct{}{}
	}
	return nil
}
