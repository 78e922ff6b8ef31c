package schedule

import (
	"errors"
	"fmt"
)

var ErrInvalidWindow = errors.New("invalid slot window")

// Window describes the selectable slots: Start, Start+Step, ... while < End.
type Window struct {
	Start int
	End   int
	Step  int
}

// NewWindow parses the window bounds. end may be "24:00".
func NewWindow(start, end string, step int) (Window, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start: %w", ErrInvalidWindow, err)
	}
	e, err := ParseBound(end)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end: %w", ErrInvalidWindow, err)
	}
	w := Window{Start: s, End: e, Step: step}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate checks the window is non-empty and inside one day.
func (w Window) Validate() error {
	if w.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidWindow, w.Step)
	}
	if w.Start < 0 || w.End > MinutesPerDay || w.Start >= w.End {
		return fmt.Errorf("%w: %d..%d", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Slots returns the ordered slot labels of the window.
func (w Window) Slots() []string {
	if w.Validate() != nil {
		return nil
	}
	slots := make([]string, 0, (w.End-w.Start+w.Step-1)/w.Step)
	for m := w.Start; m < w.End; m += w.Step {
		slots = append(slots, FromMinutes(m))
	}
	return slots
}
