package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/lumusproject/lumus-backend/internal/timegrid"
)

// SessionState tracks where a booking session is in its lifecycle.
type SessionState int

const (
	StateNoDateChosen SessionState = iota
	StateDateChosen
	StateTimesChosen
	StateCommitting
)

// ReadOnlyError signals a mutation attempt from a read-only (guest) session.
// When the touched slot is claimed, the claimant is attached so the caller can
// show who holds it; when free, the message is a plain login prompt.
type ReadOnlyError struct {
	Claimant *Reservation
}

func (e *ReadOnlyError) Error() string {
	if e.Claimant != nil {
		return fmt.Sprintf("slot is booked by %s; log in to manage bookings", e.Claimant.UserName)
	}
	return "login required to select time slots"
}

func (e *ReadOnlyError) Unwrap() error {
	return ErrReadOnly
}

// Session holds one caller's in-progress selection: the chosen date, the
// accumulating set of time slots, and the write capability. It serializes
// commits: a second commit while one is in flight is rejected, not queued.
type Session struct {
	mu       sync.Mutex
	canWrite bool

	state SessionState
	date  time.Time
	times map[string]struct{}
}

// NewSession creates an empty session. canWrite is false for guest callers,
// which turns every mutating operation into a ReadOnlyError.
func NewSession(canWrite bool) *Session {
	return &Session{
		canWrite: canWrite,
		state:    StateNoDateChosen,
		times:    make(map[string]struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Date returns the chosen date, zero when none is chosen.
func (s *Session) Date() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.date
}

// Times returns the current selection in grid order.
func (s *Session) Times() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timesLocked()
}

func (s *Session) timesLocked() []string {
	out := make([]string, 0, len(s.times))
	for t := range s.times {
		out = append(out, t)
	}
	timegrid.Sort(out)
	return out
}

// ChooseDate switches the session to a new date, discarding any selection made
// for the previous one. Allowed from any state except mid-commit.
func (s *Session) ChooseDate(d time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCommitting {
		return ErrCommitInProgress
	}
	s.date = d
	s.times = make(map[string]struct{})
	s.state = StateDateChosen
	return nil
}

// ToggleTime adds or removes one slot from the selection. Guests get a
// ReadOnlyError and the selection is left untouched; writers cannot select a
// slot that is claimed in the given occupancy.
func (s *Session) ToggleTime(label string, occ *Occupancy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateNoDateChosen {
		return fmt.Errorf("%w: no date chosen", ErrInvalidTimes)
	}
	if s.state == StateCommitting {
		return ErrCommitInProgress
	}
	if !timegrid.Contains(label) {
		return fmt.Errorf("%w: unknown slot %q", ErrInvalidTimes, label)
	}
	if !s.canWrite {
		return &ReadOnlyError{Claimant: occ.Claimant(label)}
	}

	if _, selected := s.times[label]; selected {
		delete(s.times, label)
	} else {
		if occ.IsClaimed(label) {
			return ErrSlotTaken
		}
		s.times[label] = struct{}{}
	}

	if len(s.times) == 0 {
		s.state = StateDateChosen
	} else {
		s.state = StateTimesChosen
	}
	return nil
}

// SelectAllFree replaces the selection with every slot currently free in the
// occupancy. An empty result is a valid selection and returns the session to
// DateChosen.
func (s *Session) SelectAllFree(occ *Occupancy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateNoDateChosen {
		return fmt.Errorf("%w: no date chosen", ErrInvalidTimes)
	}
	if s.state == StateCommitting {
		return ErrCommitInProgress
	}
	if !s.canWrite {
		return &ReadOnlyError{}
	}

	s.times = make(map[string]struct{})
	for _, label := range occ.FreeTimes() {
		s.times[label] = struct{}{}
	}
	if len(s.times) == 0 {
		s.state = StateDateChosen
	} else {
		s.state = StateTimesChosen
	}
	return nil
}

// Clear empties the selection but keeps the chosen date.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateNoDateChosen {
		return nil
	}
	if s.state == StateCommitting {
		return ErrCommitInProgress
	}
	s.times = make(map[string]struct{})
	s.state = StateDateChosen
	return nil
}

// BeginCommit marks the session as committing. It fails when no times are
// selected or another commit is already in flight.
func (s *Session) BeginCommit() ([]string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateCommitting:
		return nil, time.Time{}, ErrCommitInProgress
	case StateTimesChosen:
		// proceed
	default:
		return nil, time.Time{}, fmt.Errorf("%w: nothing selected", ErrInvalidTimes)
	}

	times := s.timesLocked()
	s.state = StateCommitting
	return times, s.date, nil
}

// FinishCommit resolves an in-flight commit. On success the session resets to
// NoDateChosen; on failure it returns to TimesChosen with the selection kept,
// so a rejected commit never loses the caller's work.
func (s *Session) FinishCommit(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCommitting {
		return
	}
	if ok {
		s.date = time.Time{}
		s.times = make(map[string]struct{})
		s.state = StateNoDateChosen
		return
	}
	if len(s.times) == 0 {
		s.state = StateDateChosen
	} else {
		s.state = StateTimesChosen
	}
}
