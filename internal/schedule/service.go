package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumusproject/lumus-backend/internal/calendar"
	"github.com/lumusproject/lumus-backend/internal/course"
	"github.com/lumusproject/lumus-backend/internal/lab"
	"github.com/lumusproject/lumus-backend/internal/timegrid"
)

// CommitRequest carries everything needed to validate and persist one booking,
// including the caller's write capability. CanWrite is checked before any
// store interaction so guests never trigger network calls.
type CommitRequest struct {
	LabNickname string
	Date        time.Time
	Times       []string
	UserID      string
	UserName    string
	CanWrite    bool
	CourseCode  string
	Annotation  string
	RepeatType  RepeatType
}

// SkippedOccurrence reports a series member that was not committed because its
// date already had conflicting claims.
type SkippedOccurrence struct {
	Date      time.Time
	Conflicts []string
}

// CommitResult is the outcome of a commit: the reservations actually persisted
// (base plus series members) and any series occurrences skipped on conflict.
type CommitResult struct {
	Confirmed []*Reservation
	Skipped   []SkippedOccurrence
}

type Service interface {
	// Commit re-validates the request against fresh occupancy and persists the
	// reservation plus any recurrence series. The base occurrence failing
	// aborts the whole commit; a conflicting series occurrence is skipped and
	// reported without rolling back occurrences already committed.
	Commit(ctx context.Context, req CommitRequest) (*CommitResult, error)

	// Availability resolves the current occupancy for one lab and date.
	Availability(ctx context.Context, labNickname string, date time.Time) (*Occupancy, error)

	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)

	// Cancel transitions a reservation to cancelled, freeing its slots.
	// Only the owner or an admin may cancel.
	Cancel(ctx context.Context, id string, callerUserID string, isAdmin bool) error
}

type service struct {
	store         Store
	resolver      *Resolver
	labService    lab.Service
	courseService course.Service

	recurrenceCount int
}

// NewService wires the commit validator. recurrenceCount bounds how many
// occurrences a repeating booking expands into, and the base booking counts
// toward it: the default of 10 yields the base plus nine future members.
func NewService(store Store, labService lab.Service, courseService course.Service, recurrenceCount int) Service {
	if recurrenceCount <= 0 {
		recurrenceCount = 10
	}
	return &service{
		store:           store,
		resolver:        NewResolver(store),
		labService:      labService,
		courseService:   courseService,
		recurrenceCount: recurrenceCount,
	}
}

func (s *service) Commit(ctx context.Context, req CommitRequest) (*CommitResult, error) {
	// 1. Capability gate. Guests are rejected before any lookup.
	if !req.CanWrite {
		return nil, ErrForbiddenGuest
	}

	// 2. Input validation.
	if err := timegrid.Validate(req.Times); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimes, err)
	}
	rule := req.RepeatType
	if rule == "" {
		rule = RepeatNone
	}
	if !rule.Valid() {
		return nil, fmt.Errorf("%w: unknown repeat type %q", ErrInvalidTimes, req.RepeatType)
	}
	if !calendar.IsSelectable(req.Date, time.Now().UTC()) {
		return nil, ErrPastDate
	}

	// 3. Reference data checks.
	if _, err := s.labService.GetByNickname(ctx, req.LabNickname); err != nil {
		if errors.Is(err, lab.ErrNotFound) {
			return nil, ErrLabNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if req.CourseCode != "" {
		if _, err := s.courseService.GetByCode(ctx, req.CourseCode); err != nil {
			if errors.Is(err, course.ErrNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	result := &CommitResult{}

	// 4. Base occurrence. Any failure here aborts the commit with no writes.
	base, err := s.commitOne(ctx, req, req.Date, req.Times, rule)
	if err != nil {
		return nil, err
	}
	result.Confirmed = append(result.Confirmed, base)

	// 5. Recurrence series. The base counts toward the occurrence bound; each
	// member is conflict-checked on its own date, and a conflict skips that
	// occurrence only.
	for _, occ := range Expand(req.Date, req.Times, rule, s.recurrenceCount-1) {
		r, err := s.commitOne(ctx, req, occ.Date, occ.Times, rule)
		if err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				result.Skipped = append(result.Skipped, SkippedOccurrence{
					Date:      occ.Date,
					Conflicts: conflict.Conflicts,
				})
				continue
			}
			// Upstream failure mid-series: report what was committed so far.
			return result, err
		}
		result.Confirmed = append(result.Confirmed, r)
	}

	return result, nil
}

// commitOne runs the re-resolve / conflict-check / persist cycle for a single
// (date, times) occurrence. Occupancy is always re-resolved here: selection-time
// state is never trusted, which closes the race between picking slots and
// submitting them.
func (s *service) commitOne(ctx context.Context, req CommitRequest, date time.Time, times []string, rule RepeatType) (*Reservation, error) {
	occ, err := s.resolver.Resolve(ctx, req.LabNickname, date)
	if err != nil {
		return nil, err
	}

	if conflicts := occ.Conflicts(times); len(conflicts) > 0 {
		return nil, &ConflictError{
			LabNickname: req.LabNickname,
			Date:        date,
			Conflicts:   conflicts,
		}
	}

	sorted := make([]string, len(times))
	copy(sorted, times)
	timegrid.Sort(sorted)

	r := &Reservation{
		LabNickname: req.LabNickname,
		Date:        date,
		Times:       sorted,
		UserID:      req.UserID,
		UserName:    req.UserName,
		CourseCode:  req.CourseCode,
		Annotation:  req.Annotation,
		RepeatType:  rule,
		Status:      StatusPending,
	}

	if err := s.store.Create(ctx, r); err != nil {
		if errors.Is(err, ErrTimeConflict) {
			// A concurrent commit won the race between our resolve and the
			// write. Re-resolve once so the caller learns which slots.
			if fresh, rerr := s.resolver.Resolve(ctx, req.LabNickname, date); rerr == nil {
				if conflicts := fresh.Conflicts(times); len(conflicts) > 0 {
					return nil, &ConflictError{LabNickname: req.LabNickname, Date: date, Conflicts: conflicts}
				}
			}
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// Confirm in the same call. The row already occupies its slots either way,
	// so a failed confirmation cannot break disjointness.
	if err := s.store.UpdateStatus(ctx, r.ID, StatusConfirmed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	r.Status = StatusConfirmed

	return r, nil
}

func (s *service) Availability(ctx context.Context, labNickname string, date time.Time) (*Occupancy, error) {
	if _, err := s.labService.GetByNickname(ctx, labNickname); err != nil {
		if errors.Is(err, lab.ErrNotFound) {
			return nil, ErrLabNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return s.resolver.Resolve(ctx, labNickname, date)
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.store.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.store.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id string, callerUserID string, isAdmin bool) error {
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && r.UserID != callerUserID {
		return ErrPermissionDenied
	}
	if r.Status == StatusCancelled {
		return nil
	}
	return s.store.UpdateStatus(ctx, id, StatusCancelled)
}
