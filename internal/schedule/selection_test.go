package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func occupancyWith(claims map[string]*Reservation) *Occupancy {
	if claims == nil {
		claims = make(map[string]*Reservation)
	}
	return &Occupancy{LabNickname: "LAB01", Date: tomorrow(), claims: claims}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(true)
	free := occupancyWith(nil)

	require.Equal(t, StateNoDateChosen, s.State())

	d := tomorrow()
	require.NoError(t, s.ChooseDate(d))
	require.Equal(t, StateDateChosen, s.State())
	require.True(t, s.Date().Equal(d))

	require.NoError(t, s.ToggleTime("09:50", free))
	require.Equal(t, StateTimesChosen, s.State())
	require.Equal(t, []string{"09:50"}, s.Times())

	// Toggling the same slot again deselects and drops back to DateChosen.
	require.NoError(t, s.ToggleTime("09:50", free))
	require.Equal(t, StateDateChosen, s.State())
	require.Empty(t, s.Times())
}

func TestSessionSelectionIsGridOrdered(t *testing.T) {
	s := NewSession(true)
	free := occupancyWith(nil)
	require.NoError(t, s.ChooseDate(tomorrow()))

	for _, label := range []string{"19:00", "07:00", "13:50"} {
		require.NoError(t, s.ToggleTime(label, free))
	}
	require.Equal(t, []string{"07:00", "13:50", "19:00"}, s.Times())
}

func TestSessionRejectsInvalidToggles(t *testing.T) {
	s := NewSession(true)
	free := occupancyWith(nil)

	// No date chosen yet.
	require.ErrorIs(t, s.ToggleTime("09:50", free), ErrInvalidTimes)

	require.NoError(t, s.ChooseDate(tomorrow()))

	// Off-grid label.
	require.ErrorIs(t, s.ToggleTime("12:00", free), ErrInvalidTimes)

	// Claimed slot.
	taken := occupancyWith(map[string]*Reservation{
		"09:50": {ID: "r1", UserName: "Bob", Status: StatusConfirmed},
	})
	require.ErrorIs(t, s.ToggleTime("09:50", taken), ErrSlotTaken)
	require.Empty(t, s.Times())

	// Deselecting a slot you hold works even if occupancy shows it claimed
	// (your own commit may have landed meanwhile).
	require.NoError(t, s.ToggleTime("10:40", free))
	nowTaken := occupancyWith(map[string]*Reservation{
		"10:40": {ID: "r2", UserName: "Alice", Status: StatusConfirmed},
	})
	require.NoError(t, s.ToggleTime("10:40", nowTaken))
	require.Empty(t, s.Times())
}

func TestGuestSessionIsReadOnly(t *testing.T) {
	s := NewSession(false)
	require.NoError(t, s.ChooseDate(tomorrow()))

	claimant := &Reservation{ID: "r1", UserName: "Bob", Status: StatusConfirmed}
	occ := occupancyWith(map[string]*Reservation{"09:50": claimant})

	err := s.ToggleTime("09:50", occ)
	require.ErrorIs(t, err, ErrReadOnly)

	var ro *ReadOnlyError
	require.ErrorAs(t, err, &ro)
	require.Equal(t, claimant, ro.Claimant)

	// A free slot still yields read-only, just without a claimant.
	err = s.ToggleTime("10:40", occ)
	require.ErrorIs(t, err, ErrReadOnly)
	require.ErrorAs(t, err, &ro)
	require.Nil(t, ro.Claimant)

	require.ErrorIs(t, s.SelectAllFree(occ), ErrReadOnly)

	// Selection state is untouched by denied mutations.
	require.Empty(t, s.Times())
	require.Equal(t, StateDateChosen, s.State())
}

func TestSelectAllFree(t *testing.T) {
	s := NewSession(true)
	require.NoError(t, s.ChooseDate(tomorrow()))

	occ := occupancyWith(map[string]*Reservation{
		"07:00": {ID: "r1", Status: StatusConfirmed},
		"21:30": {ID: "r2", Status: StatusConfirmed},
	})

	require.NoError(t, s.SelectAllFree(occ))
	require.Equal(t, StateTimesChosen, s.State())
	require.Equal(t, occ.FreeTimes(), s.Times())

	// Fully claimed day leaves an empty, valid selection.
	full := make(map[string]*Reservation)
	for _, r := range occ.FreeTimes() {
		full[r] = &Reservation{Status: StatusConfirmed}
	}
	full["07:00"] = &Reservation{Status: StatusConfirmed}
	full["21:30"] = &Reservation{Status: StatusConfirmed}
	require.NoError(t, s.SelectAllFree(occupancyWith(full)))
	require.Equal(t, StateDateChosen, s.State())
	require.Empty(t, s.Times())
}

func TestChooseDateResetsSelection(t *testing.T) {
	s := NewSession(true)
	free := occupancyWith(nil)
	require.NoError(t, s.ChooseDate(tomorrow()))
	require.NoError(t, s.ToggleTime("09:50", free))

	other := tomorrow().AddDate(0, 0, 1)
	require.NoError(t, s.ChooseDate(other))
	require.Empty(t, s.Times())
	require.Equal(t, StateDateChosen, s.State())
	require.True(t, s.Date().Equal(other))
}

func TestClearKeepsDate(t *testing.T) {
	s := NewSession(true)
	free := occupancyWith(nil)
	d := tomorrow()
	require.NoError(t, s.ChooseDate(d))
	require.NoError(t, s.ToggleTime("09:50", free))

	require.NoError(t, s.Clear())
	require.Empty(t, s.Times())
	require.Equal(t, StateDateChosen, s.State())
	require.True(t, s.Date().Equal(d))
}

func TestCommitFlowSerialization(t *testing.T) {
	s := NewSession(true)
	free := occupancyWith(nil)
	d := tomorrow()
	require.NoError(t, s.ChooseDate(d))
	require.NoError(t, s.ToggleTime("09:50", free))
	require.NoError(t, s.ToggleTime("10:40", free))

	times, date, err := s.BeginCommit()
	require.NoError(t, err)
	require.Equal(t, []string{"09:50", "10:40"}, times)
	require.True(t, date.Equal(d))
	require.Equal(t, StateCommitting, s.State())

	// Everything is locked out while the commit is in flight.
	_, _, err = s.BeginCommit()
	require.ErrorIs(t, err, ErrCommitInProgress)
	require.ErrorIs(t, s.ToggleTime("11:30", free), ErrCommitInProgress)
	require.ErrorIs(t, s.ChooseDate(d), ErrCommitInProgress)
	require.ErrorIs(t, s.Clear(), ErrCommitInProgress)
	require.ErrorIs(t, s.SelectAllFree(free), ErrCommitInProgress)
}

func TestFinishCommitSuccessResets(t *testing.T) {
	s := NewSession(true)
	free := occupancyWith(nil)
	require.NoError(t, s.ChooseDate(tomorrow()))
	require.NoError(t, s.ToggleTime("09:50", free))
	_, _, err := s.BeginCommit()
	require.NoError(t, err)

	s.FinishCommit(true)
	require.Equal(t, StateNoDateChosen, s.State())
	require.Empty(t, s.Times())
	require.True(t, s.Date().IsZero())
}

func TestFinishCommitFailureKeepsSelection(t *testing.T) {
	s := NewSession(true)
	free := occupancyWith(nil)
	d := tomorrow()
	require.NoError(t, s.ChooseDate(d))
	require.NoError(t, s.ToggleTime("09:50", free))
	_, _, err := s.BeginCommit()
	require.NoError(t, err)

	s.FinishCommit(false)
	require.Equal(t, StateTimesChosen, s.State())
	require.Equal(t, []string{"09:50"}, s.Times())
	require.True(t, s.Date().Equal(d))

	// The kept selection can be resubmitted.
	_, _, err = s.BeginCommit()
	require.NoError(t, err)
}

func TestBeginCommitNeedsSelection(t *testing.T) {
	s := NewSession(true)
	_, _, err := s.BeginCommit()
	require.ErrorIs(t, err, ErrInvalidTimes)

	require.NoError(t, s.ChooseDate(tomorrow()))
	_, _, err = s.BeginCommit()
	require.ErrorIs(t, err, ErrInvalidTimes)
}
