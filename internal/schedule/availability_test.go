package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func halfHourSlots(t *testing.T) []string {
	t.Helper()
	w, err := NewWindow("09:00", "20:00", 30)
	require.NoError(t, err)
	return w.Slots()
}

func TestIsStartDisabled(t *testing.T) {
	slots := halfHourSlots(t)
	existing := []Reservation{{Date: "2024-01-10", Room: "A", Time: "09:00-10:00", Name: "suzuki"}}

	testCases := []struct {
		name      string
		candidate string
		date      string
		room      string
		expected  bool
	}{
		{name: "inside reservation", candidate: "09:30", date: "2024-01-10", room: "A", expected: true},
		{name: "reservation start", candidate: "09:00", date: "2024-01-10", room: "A", expected: true},
		{name: "right after reservation", candidate: "10:00", date: "2024-01-10", room: "A", expected: false},
		{name: "different date", candidate: "09:30", date: "2024-01-11", room: "A", expected: false},
		{name: "different room", candidate: "09:30", date: "2024-01-10", room: "B", expected: false},
		{name: "no date chosen", candidate: "09:30", date: "", room: "A", expected: false},
		{name: "final slot", candidate: "19:30", date: "2024-01-11", room: "B", expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IsStartDisabled(slots, tc.candidate, tc.date, tc.room, existing)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestIsStartDisabledUnknownSlot(t *testing.T) {
	_, err := IsStartDisabled(halfHourSlots(t), "09:15", "2024-01-10", "A", nil)
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestIsStartDisabledIgnoresIncompleteRecords(t *testing.T) {
	existing := []Reservation{
		{Room: "A", Time: "09:00-10:00"},
		{Date: "2024-01-10", Time: "09:00-10:00"},
	}
	got, err := IsStartDisabled(halfHourSlots(t), "09:00", "2024-01-10", "A", existing)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsStartDisabledRejectsMalformedStoredTime(t *testing.T) {
	existing := []Reservation{{Date: "2024-01-10", Room: "A", Time: "9-10"}}
	_, err := IsStartDisabled(halfHourSlots(t), "09:00", "2024-01-10", "A", existing)
	assert.ErrorIs(t, err, ErrMalformedTimeRange)
}

func TestIsEndDisabled(t *testing.T) {
	existing := []Reservation{{Date: "2024-01-10", Room: "A", Time: "11:00-12:00"}}

	testCases := []struct {
		name      string
		candidate string
		start     string
		expected  bool
	}{
		{name: "no start chosen", candidate: "12:00", start: "", expected: false},
		{name: "ends when reservation begins", candidate: "11:00", start: "09:00", expected: false},
		{name: "runs into reservation", candidate: "11:30", start: "09:00", expected: true},
		{name: "spans reservation", candidate: "13:00", start: "10:00", expected: true},
		{name: "after reservation", candidate: "13:00", start: "12:00", expected: false},
		{name: "same as start", candidate: "10:00", start: "10:00", expected: true},
		{name: "before start", candidate: "09:30", start: "10:00", expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IsEndDisabled(tc.candidate, tc.start, "2024-01-10", "A", existing)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestIsEndDisabledOtherRoom(t *testing.T) {
	existing := []Reservation{{Date: "2024-01-10", Room: "A", Time: "11:00-12:00"}}
	got, err := IsEndDisabled("13:00", "10:00", "2024-01-10", "B", existing)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEndCandidates(t *testing.T) {
	got := EndCandidates([]string{"09:00", "09:30", "10:00", "10:30"}, "09:30")
	assert.Equal(t, []string{"10:00", "10:30"}, got)
}

func TestStartAndEndOptions(t *testing.T) {
	w, err := NewWindow("09:00", "11:00", 30)
	require.NoError(t, err)
	existing := []Reservation{{Date: "2024-01-10", Room: "A", Time: "09:30-10:00"}}

	starts, err := StartOptions(w.Slots(), "2024-01-10", "A", existing)
	require.NoError(t, err)
	assert.Equal(t, []SlotOption{
		{Label: "09:00", Disabled: false},
		{Label: "09:30", Disabled: true},
		{Label: "10:00", Disabled: false},
		{Label: "10:30", Disabled: true},
	}, starts)

	ends, err := EndOptions(w.Slots(), "09:00", "2024-01-10", "A", existing)
	require.NoError(t, err)
	assert.Equal(t, []SlotOption{
		{Label: "09:30", Disabled: false},
		{Label: "10:00", Disabled: true},
		{Label: "10:30", Disabled: true},
	}, ends)

	_, err = EndOptions(w.Slots(), "9:00", "2024-01-10", "A", existing)
	assert.ErrorIs(t, err, ErrMalformedLabel)
}

func TestConflicts(t *testing.T) {
	existing := []Reservation{
		{Date: "2024-01-10", Room: "A", Time: "09:00-10:00", Name: "a"},
		{Date: "2024-01-10", Room: "A", Time: "10:00-11:00", Name: "b"},
		{Date: "2024-01-10", Room: "B", Time: "09:00-12:00", Name: "c"},
	}

	got, err := Conflicts(Reservation{Date: "2024-01-10", Room: "A", Time: "09:30-10:30"}, existing)
	require.NoError(t, err)
	assert.Equal(t, existing[:2], got)

	got, err = Conflicts(Reservation{Date: "2024-01-10", Room: "A", Time: "11:00-12:00"}, existing)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Conflicts(Reservation{Date: "2024-01-10", Room: "A", Time: "12:00-11:00"}, existing)
	assert.ErrorIs(t, err, ErrMalformedTimeRange)
}

func TestAvailabilityDoesNotMutateInput(t *testing.T) {
	existing := []Reservation{{Date: "2024-01-10", Room: "A", Time: "09:00-10:00"}}
	snapshot := append([]Reservation(nil), existing...)
	_, err := StartOptions(halfHourSlots(t), "2024-01-10", "A", existing)
	require.NoError(t, err)
	assert.Equal(t, snapshot, existing)
}
