package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name                       string
		startA, endA, startB, endB string
		expected                   bool
	}{
		{name: "back to back", startA: "09:00", endA: "10:00", startB: "10:00", endB: "11:00", expected: false},
		{name: "partial", startA: "09:00", endA: "10:30", startB: "10:00", endB: "11:00", expected: true},
		{name: "contained", startA: "09:00", endA: "12:00", startB: "10:00", endB: "11:00", expected: true},
		{name: "identical", startA: "13:00", endA: "14:00", startB: "13:00", endB: "14:00", expected: true},
		{name: "disjoint", startA: "08:00", endA: "09:00", startB: "15:00", endB: "16:00", expected: false},
		{name: "one minute", startA: "09:00", endA: "10:01", startB: "10:00", endB: "11:00", expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Overlaps(tc.startA, tc.endA, tc.startB, tc.endB)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)

			swapped, err := Overlaps(tc.startB, tc.endB, tc.startA, tc.endA)
			require.NoError(t, err)
			assert.Equal(t, got, swapped, "overlap must be symmetric")
		})
	}
}

func TestOverlapsRejectsMalformedLabels(t *testing.T) {
	_, err := Overlaps("09:00", "10:00", "1000", "11:00")
	assert.ErrorIs(t, err, ErrMalformedLabel)
}

func TestParseTimeRange(t *testing.T) {
	iv, err := ParseTimeRange("09:00-10:30")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 540, End: 630}, iv)

	for _, bad := range []string{"", "09:00", "10:00-09:00", "09:00-09:00", "9:00-10:00", "09:00~10:00"} {
		_, err := ParseTimeRange(bad)
		assert.ErrorIs(t, err, ErrMalformedTimeRange, bad)
	}
}

func TestFormatTimeRange(t *testing.T) {
	s := FormatTimeRange("09:00", "10:00")
	assert.Equal(t, "09:00-10:00", s)

	start, end, ok := SplitTimeRange(s)
	assert.True(t, ok)
	assert.Equal(t, "09:00", start)
	assert.Equal(t, "10:00", end)
}
