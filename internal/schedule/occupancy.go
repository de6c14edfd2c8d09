package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/lumusproject/lumus-backend/internal/timegrid"
)

// Occupancy is the derived free/claimed view of every grid slot for one lab
// and date. It is rebuilt from the store on every query and never persisted;
// a failed resolve yields no Occupancy at all, so "unknown" can never be
// mistaken for "free".
type Occupancy struct {
	LabNickname string
	Date        time.Time
	claims      map[string]*Reservation
}

// IsClaimed reports whether the slot is taken by a live reservation.
func (o *Occupancy) IsClaimed(label string) bool {
	_, ok := o.claims[label]
	return ok
}

// Claimant returns the live reservation holding the slot, or nil when free.
func (o *Occupancy) Claimant(label string) *Reservation {
	return o.claims[label]
}

// FreeTimes returns the unclaimed grid slots in grid order.
func (o *Occupancy) FreeTimes() []string {
	var free []string
	for _, label := range timegrid.Labels() {
		if !o.IsClaimed(label) {
			free = append(free, label)
		}
	}
	return free
}

// ClaimedTimes returns the claimed grid slots in grid order.
func (o *Occupancy) ClaimedTimes() []string {
	var claimed []string
	for _, label := range timegrid.Labels() {
		if o.IsClaimed(label) {
			claimed = append(claimed, label)
		}
	}
	return claimed
}

// Conflicts returns the subset of the requested labels already claimed,
// in grid order.
func (o *Occupancy) Conflicts(times []string) []string {
	var conflicts []string
	for _, label := range times {
		if o.IsClaimed(label) {
			conflicts = append(conflicts, label)
		}
	}
	timegrid.Sort(conflicts)
	return conflicts
}

// Resolver derives Occupancy from the reservation store.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve fetches the live reservations for (lab, date) and marks each grid
// slot claimed or free. Slots outside the grid that appear in stored data are
// ignored rather than invented.
func (r *Resolver) Resolve(ctx context.Context, labNickname string, date time.Time) (*Occupancy, error) {
	reservations, err := r.store.FetchForDay(ctx, labNickname, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	occ := &Occupancy{
		LabNickname: labNickname,
		Date:        date,
		claims:      make(map[string]*Reservation),
	}
	for _, res := range reservations {
		if !res.Status.Live() {
			continue
		}
		for _, label := range res.Times {
			if !timegrid.Contains(label) {
				continue
			}
			occ.claims[label] = res
		}
	}
	return occ, nil
}
