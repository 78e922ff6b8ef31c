package schedule

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownSlot = errors.New("slot is not part of the slot sequence")

// Reservation is the engine's view of a stored reservation. An empty field is
// treated as missing.
type Reservation struct {
	Date    string `json:"date"`
	Room    string `json:"room"`
	Time    string `json:"time"`
	Name    string `json:"name"`
	Subject string `json:"subject,omitempty"`
}

// Start returns the start label of Time, or "" when Time is missing.
func (r Reservation) Start() string {
	start, _, _ := SplitTimeRange(r.Time)
	return start
}

// sameRoom reports whether r claims the given date and room. Missing values never match.
func (r Reservation) sameRoom(date, room string) bool {
	if date == "" || room == "" || r.Date == "" || r.Room == "" {
		return false
	}
	return r.Date == date && r.Room == room
}

// SlotOption is one selectable slot with its disabled flag.
type SlotOption struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// overlapsAny reports whether want overlaps any reservation on date/room.
func overlapsAny(want Interval, date, room string, existing []Reservation) (bool, error) {
	for i, r := range existing {
		if !r.sameRoom(date, room) {
			continue
		}
		iv, err := ParseTimeRange(r.Time)
		if err != nil {
			return false, fmt.Errorf("reservation %d: %w", i, err)
		}
		if want.Overlaps(iv) {
			return true, nil
		}
	}
	return false, nil
}

// IsStartDisabled reports whether candidate cannot be picked as a start time.
// The final slot has no successor and is always disabled; any other slot is
// disabled when [candidate, next slot) overlaps a reservation for date and room.
func IsStartDisabled(slots []string, candidate, date, room string, existing []Reservation) (bool, error) {
	idx := slices.Index(slots, candidate)
	if idx < 0 {
		return false, fmt.Errorf("%w: %q", ErrUnknownSlot, candidate)
	}
	if idx == len(slots)-1 {
		return true, nil
	}
	want, err := NewInterval(candidate, slots[idx+1])
	if err != nil {
		return false, err
	}
	return overlapsAny(want, date, room, existing)
}

// IsEndDisabled reports whether candidate cannot be picked as the end time once
// chosenStart is set. Without a start nothing is disabled.
func IsEndDisabled(candidate, chosenStart, date, room string, existing []Reservation) (bool, error) {
	if chosenStart == "" {
		return false, nil
	}
	want, err := NewInterval(chosenStart, candidate)
	if err != nil {
		return false, err
	}
	if candidate <= chosenStart {
		return true, nil
	}
	return overlapsAny(want, date, room, existing)
}

// EndCandidates keeps the end labels strictly after chosenStart. Labels are
// fixed width so string order is chronological.
func EndCandidates(endSlots []string, chosenStart string) []string {
	out := make([]string, 0, len(endSlots))
	for _, s := range endSlots {
		if s > chosenStart {
			out = append(out, s)
		}
	}
	return out
}

// StartOptions evaluates IsStartDisabled for every slot.
func StartOptions(slots []string, date, room string, existing []Reservation) ([]SlotOption, error) {
	opts := make([]SlotOption, 0, len(slots))
	for _, s := range slots {
		disabled, err := IsStartDisabled(slots, s, date, room, existing)
		if err != nil {
			return nil, err
		}
		opts = append(opts, SlotOption{Label: s, Disabled: disabled})
	}
	return opts, nil
}

// EndOptions evaluates IsEndDisabled for the end slots after chosenStart.
func EndOptions(endSlots []string, chosenStart, date, room string, existing []Reservation) ([]SlotOption, error) {
	if _, err := ToMinutes(chosenStart); err != nil {
		return nil, err
	}
	candidates := EndCandidates(endSlots, chosenStart)
	opts := make([]SlotOption, 0, len(candidates))
	for _, s := range candidates {
		disabled, err := IsEndDisabled(s, chosenStart, date, room, existing)
		if err != nil {
			return nil, err
		}
		opts = append(opts, SlotOption{Label: s, Disabled: disabled})
	}
	return opts, nil
}

// Conflicts returns the reservations that overlap candidate on the same date and room.
func Conflicts(candidate Reservation, existing []Reservation) ([]Reservation, error) {
	want, err := ParseTimeRange(candidate.Time)
	if err != nil {
		return nil, err
	}
	var out []Reservation
	for i, r := range existing {
		if !r.sameRoom(candidate.Date, candidate.Room) {
			continue
		}
		iv, err := ParseTimeRange(r.Time)
		if err != nil {
			return nil, fmt.Errorf("reservation %d: %w", i, err)
		}
		if want.Overlaps(iv) {
			out = append(out, r)
		}
	}
	return out, nil
}
