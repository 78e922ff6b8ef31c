package schedule

import (
	"slices"
	"strings"
)

// Sort returns a new slice ordered by date, then start time. Missing dates and
// missing times sort last. The order is stable and the input is not modified.
func Sort(rs []Reservation) []Reservation {
	return SortBy(rs, func(r Reservation) Reservation { return r })
}

// SortBy orders any record type by the reservation returned from key.
func SortBy[T any](items []T, key func(T) Reservation) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return compare(key(a), key(b))
	})
	return out
}

func compare(a, b Reservation) int {
	if c := compareMissingLast(a.Date, b.Date); c != 0 {
		return c
	}
	return compareMissingLast(a.Start(), b.Start())
}

func compareMissingLast(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(a, b)
}
