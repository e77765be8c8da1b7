package timeutil

import (
	"fmt"
	"strings"
)

const (
	// DefaultStartHour is the first hour shown in a week view.
	DefaultStartHour = 3
	// DefaultEndHour is the hour a week view stops at.
	DefaultEndHour = 22
)

// HourRange is a visible window of whole hours, Start in [0,23], End in [1,24].
type HourRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// DefaultHourRange is 03:00 to 22:00.
func DefaultHourRange() HourRange {
	return HourRange{Start: DefaultStartHour, End: DefaultEndHour}
}

// Validate checks the bounds and ordering of r.
func (r HourRange) Validate() error {
	if r.Start < 0 || r.Start > 23 {
		return fmt.Errorf("start hour %d: %w (0-23)", r.Start, ErrHourOutOfRange)
	}
	if r.End < 1 || r.End > 24 {
		return fmt.Errorf("end hour %d: %w (1-24)", r.End, ErrHourOutOfRange)
	}
	if r.End <= r.Start {
		return fmt.Errorf("%d to %d: %w", r.Start, r.End, ErrStartAfterEnd)
	}
	return nil
}

// Contains reports whether the fractional hour h lies inside the window.
func (r HourRange) Contains(h float64) bool {
	return h >= float64(r.Start) && h <= float64(r.End)
}

func (r HourRange) String() string {
	return fmt.Sprintf("%d:00 to %d:00", r.Start, r.End)
}

func isTwentyFour(token string) bool {
	s := strings.TrimSpace(token)
	return s == "24" || s == "24:00"
}

// ParseStartHour reads the first hour of a window. Minutes are truncated, so
// "9:45" starts at 9. "24" is rejected.
func ParseStartHour(token string) (int, error) {
	if isTwentyFour(token) {
		return 0, &TimeError{Token: token, Reason: "24 is only valid as an end hour", Err: ErrEndOnly}
	}
	t, err := ParseTimeOfDay(token)
	if err != nil {
		return 0, err
	}
	return t.Hour(), nil
}

// ParseEndHour reads the last hour of a window. Minutes round up, so "21:15"
// ends at 22, capped at 24. "24" and "24:00" are accepted; midnight is not.
func ParseEndHour(token string) (int, error) {
	if isTwentyFour(token) {
		return 24, nil
	}
	t, err := ParseTimeOfDay(token)
	if err != nil {
		return 0, err
	}
	h := t.Hour()
	if t.Minute() > 0 {
		h++
	}
	if h > 24 {
		h = 24
	}
	if h < 1 {
		return 0, &TimeError{Token: token, Reason: "end hour must be between 1 and 24", Err: ErrHourOutOfRange}
	}
	return h, nil
}

// ParseHourRange reads a start and end token and checks that start < end.
func ParseHourRange(start, end string) (HourRange, error) {
	s, err := ParseStartHour(start)
	if err != nil {
		return HourRange{}, fmt.Errorf("start hour: %w", err)
	}
	e, err := ParseEndHour(end)
	if err != nil {
		return HourRange{}, fmt.Errorf("end hour: %w", err)
	}
	r := HourRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return HourRange{}, err
	}
	return r, nil
}
