package schedule

import (
	"context"
	"time"
)

// Store is the reservation persistence boundary. The engine treats it as an
// injected collaborator: any transport failure must surface as ErrUpstream,
// and Create must fail with ErrTimeConflict when the store itself detects a
// disjointness violation (the authoritative guard under concurrent commits).
type Store interface {
	// FetchForDay returns the live (non-cancelled) reservations for one lab
	// and date.
	FetchForDay(ctx context.Context, labNickname string, date time.Time) ([]*Reservation, error)

	// Create persists a new reservation and fills in ID and timestamps.
	Create(ctx context.Context, r *Reservation) error

	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
