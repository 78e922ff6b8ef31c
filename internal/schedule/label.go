// Package schedule holds the reservation conflict engine: time label arithmetic,
// the half-open overlap rule, slot generation, availability filtering and the
// display ordering of reservations. Every function is pure.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// MinutesPerDay is the exclusive upper bound of a window.
const MinutesPerDay = 24 * 60

var (
	ErrMalformedLabel     = errors.New("time label must be HH:MM")
	ErrMalformedTimeRange = errors.New("time range must be HH:MM-HH:MM with start before end")
)

var labelRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ToMinutes converts a zero-padded 24-hour "HH:MM" label to minutes since midnight.
func ToMinutes(label string) (int, error) {
	m := labelRe.FindStringSubmatch(label)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLabel, label)
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return hours*60 + mins, nil
}

// ParseBound is ToMinutes plus "24:00", which is only meaningful as the
// exclusive end of a window.
func ParseBound(label string) (int, error) {
	if label == "24:00" {
		return MinutesPerDay, nil
	}
	return ToMinutes(label)
}

// FromMinutes formats minutes since midnight as "HH:MM".
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
