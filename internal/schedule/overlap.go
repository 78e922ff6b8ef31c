package schedule

import (
	"fmt"
	"strings"
)

// Interval is a half-open span [Start, End) in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether the two intervals share at least one instant.
// Back-to-back intervals do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return max(iv.Start, other.Start) < min(iv.End, other.End)
}

// NewInterval builds an interval from two labels without checking their order.
func NewInterval(start, end string) (Interval, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps applies the half-open intersection rule to two label pairs.
func Overlaps(startA, endA, startB, endB string) (bool, error) {
	a, err := NewInterval(startA, endA)
	if err != nil {
		return false, err
	}
	b, err := NewInterval(startB, endB)
	if err != nil {
		return false, err
	}
	return a.Overlaps(b), nil
}

// SplitTimeRange splits "HH:MM-HH:MM" into its two labels without validating them.
func SplitTimeRange(s string) (start, end string, ok bool) {
	return strings.Cut(s, "-")
}

// FormatTimeRange joins two labels the way reservations store them.
func FormatTimeRange(start, end string) string {
	return start + "-" + end
}

// ParseTimeRange parses a reservation time string into an interval.
func ParseTimeRange(s string) (Interval, error) {
	start, end, ok := SplitTimeRange(s)
	if !ok {
		return Interval{}, fmt.Errorf("%w: %q", ErrMalformedTimeRange, s)
	}
	iv, err := NewInterval(start, end)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %w", ErrMalformedTimeRange, s, err)
	}
	if iv.Start >= iv.End {
		return Interval{}, fmt.Errorf("%w: %q", ErrMalformedTimeRange, s)
	}
	return iv, nil
}
