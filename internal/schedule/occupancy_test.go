package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumusproject/lumus-backend/internal/timegrid"
)

func TestResolveMarksLiveClaims(t *testing.T) {
	store := newFakeStore()
	d := tomorrow()
	pending := store.insert("LAB01", d, []string{"07:00"}, "user-1")
	pending.Status = StatusPending
	confirmed := store.insert("LAB01", d, []string{"13:00", "13:50"}, "user-2")
	cancelled := store.insert("LAB01", d, []string{"19:00"}, "user-3")
	cancelled.Status = StatusCancelled

	occ, err := NewResolver(store).Resolve(context.Background(), "LAB01", d)
	require.NoError(t, err)

	// Pending and confirmed both claim; cancelled never does.
	require.True(t, occ.IsClaimed("07:00"))
	require.True(t, occ.IsClaimed("13:00"))
	require.True(t, occ.IsClaimed("13:50"))
	require.False(t, occ.IsClaimed("19:00"))

	require.Equal(t, pending, occ.Claimant("07:00"))
	require.Equal(t, confirmed, occ.Claimant("13:50"))
	require.Nil(t, occ.Claimant("19:00"))
}

func TestResolveIgnoresOffGridLabels(t *testing.T) {
	store := newFakeStore()
	d := tomorrow()
	store.insert("LAB01", d, []string{"09:50", "12:00"}, "user-1")

	occ, err := NewResolver(store).Resolve(context.Background(), "LAB01", d)
	require.NoError(t, err)

	require.Equal(t, []string{"09:50"}, occ.ClaimedTimes())
}

func TestResolveUpstreamFailureYieldsNoOccupancy(t *testing.T) {
	store := newFakeStore()
	store.fetchErr = errors.New("timeout")

	occ, err := NewResolver(store).Resolve(context.Background(), "LAB01", tomorrow())
	require.ErrorIs(t, err, ErrUpstream)
	require.Nil(t, occ, "a failed resolve must not produce an all-free view")
}

func TestFreeAndClaimedPartitionTheGrid(t *testing.T) {
	store := newFakeStore()
	d := tomorrow()
	store.insert("LAB01", d, []string{"07:50", "16:40", "21:30"}, "user-1")

	occ, err := NewResolver(store).Resolve(context.Background(), "LAB01", d)
	require.NoError(t, err)

	free := occ.FreeTimes()
	claimed := occ.ClaimedTimes()
	require.Len(t, free, timegrid.Size()-3)
	require.Equal(t, []string{"07:50", "16:40", "21:30"}, claimed)

	seen := make(map[string]bool)
	for _, l := range free {
		seen[l] = true
	}
	for _, l := range claimed {
		require.False(t, seen[l], "slot %s in both free and claimed", l)
	}
	require.Equal(t, timegrid.Size(), len(free)+len(claimed))
}

func TestConflicts(t *testing.T) {
	store := newFakeStore()
	d := tomorrow()
	store.insert("LAB01", d, []string{"09:50", "10:40"}, "user-1")

	occ, err := NewResolver(store).Resolve(context.Background(), "LAB01", d)
	require.NoError(t, err)

	tests := []struct {
		name  string
		times []string
		want  []string
	}{
		{"no overlap", []string{"07:00", "11:30"}, nil},
		{"partial overlap", []string{"09:50", "11:30"}, []string{"09:50"}},
		{"full overlap out of order", []string{"10:40", "09:50"}, []string{"09:50", "10:40"}},
		{"empty request", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, occ.Conflicts(tt.times))
		})
	}
}
