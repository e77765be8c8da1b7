// Package schedule defines the normalized records produced by parsing a
// recurring-schedule file.
package schedule

import (
	"fmt"
	"strings"
)

// Day is a single-letter day code.
type Day byte

const (
	Monday    Day = 'M'
	Tuesday   Day = 'T'
	Wednesday Day = 'W'
	Thursday  Day = 'R'
	Friday    Day = 'F'
	Saturday  Day = 'S'
	Sunday    Day = 'U'
)

// DayCodes lists the valid day letters in week order.
const DayCodes = "MTWRFSU"

var dayNames = map[Day]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// Days returns the seven days, Monday first.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// DayFromRune returns the day for a letter; the match is exact, callers
// upper-case first.
func DayFromRune(r rune) (Day, bool) {
	if r > 0x7f || !strings.ContainsRune(DayCodes, r) {
		return 0, false
	}
	return Day(r), true
}

// Valid reports whether d is one of the seven codes.
func (d Day) Valid() bool {
	_, ok := dayNames[d]
	return ok
}

// Index is the zero-based column of the day, Monday = 0. Unknown days are -1.
func (d Day) Index() int {
	return strings.IndexByte(DayCodes, byte(d))
}

// Next returns the following day, wrapping Sunday to Monday.
func (d Day) Next() Day {
	i := d.Index()
	if i < 0 {
		return d
	}
	return Day(DayCodes[(i+1)%len(DayCodes)])
}

// Name is the English day name, or "Unknown Day".
func (d Day) Name() string {
	if n, ok := dayNames[d]; ok {
		return n
	}
	return "Unknown Day"
}

func (d Day) String() string {
	return string(rune(d))
}

// MarshalText renders the single-letter code.
func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("schedule: invalid day code %q", rune(d))
	}
	return []byte{byte(d)}, nil
}

// UnmarshalText accepts a single valid letter.
func (d *Day) UnmarshalText(b []byte) error {
	s := strings.ToUpper(strings.TrimSpace(string(b)))
	if len(s) != 1 {
		return fmt.Errorf("schedule: invalid day code %q", s)
	}
	day, ok := DayFromRune(rune(s[0]))
	if !ok {
		return fmt.Errorf("schedule: invalid day code %q", s)
	}
	*d = day
	return nil
}
