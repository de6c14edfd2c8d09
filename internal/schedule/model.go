package schedule

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lumusproject/lumus-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "reservation not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrForbiddenGuest   = apperror.New(http.StatusForbidden, "login required to book a lab")
	ErrPastDate         = apperror.New(http.StatusBadRequest, "cannot book a past date")
	ErrInvalidTimes     = apperror.New(http.StatusBadRequest, "invalid time slot selection")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid reservation status")
	ErrCourseNotFound   = apperror.New(http.StatusBadRequest, "course not found")
	ErrLabNotFound      = apperror.New(http.StatusNotFound, "lab not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrUpstream         = apperror.New(http.StatusBadGateway, "reservation store unavailable")
	ErrCommitInProgress = apperror.New(http.StatusConflict, "a commit is already in progress")
	ErrReadOnly         = apperror.New(http.StatusForbidden, "read-only session")
	ErrSlotTaken        = apperror.New(http.StatusConflict, "time slot is already claimed")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Live reports whether the reservation counts toward occupancy.
// Cancelled reservations never claim slots.
func (s Status) Live() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Reservation is one booked lab-day claim: a set of time grid labels on a
// single lab and date.
type Reservation struct {
	ID          string
	LabNickname string
	Date        time.Time // date only, midnight UTC
	Times       []string
	UserID      string
	UserName    string
	CourseCode  string
	Annotation  string
	RepeatType  RepeatType
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing reservations.
type Filter struct {
	LabNickname string
	UserID      string
	CourseCode  string
	Status      string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

// ConflictError reports which requested slots were already claimed. It unwraps
// to ErrTimeConflict so callers can match with errors.Is.
type ConflictError struct {
	LabNickname string
	Date        time.Time
	Conflicts   []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slots already booked on %s at %s: %s",
		e.LabNickname, e.Date.Format("2006-01-02"), strings.Join(e.Conflicts, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrTimeConflict
}
