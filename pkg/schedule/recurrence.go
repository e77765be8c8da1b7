package schedule

import (
	"fmt"
	"strings"
)

// Recurrence is the first word of a commitment line. The three known values
// are constants; anything else is kept verbatim so consumers can report it.
type Recurrence string

const (
	// Weekly commitments happen in both weeks of the cycle.
	Weekly Recurrence = "Weekly"
	// WeekA commitments happen only in the first week of the cycle.
	WeekA Recurrence = "WeekA"
	// WeekB commitments happen only in the second week of the cycle.
	WeekB Recurrence = "WeekB"
)

// Recurrences returns the known recurrences.
func Recurrences() []Recurrence {
	return []Recurrence{Weekly, WeekA, WeekB}
}

// Known reports whether r is Weekly, WeekA or WeekB.
func (r Recurrence) Known() bool {
	switch r {
	case Weekly, WeekA, WeekB:
		return true
	}
	return false
}

// Multiplier is the number of times r occurs in one two-week cycle.
func (r Recurrence) Multiplier() int {
	if r == Weekly {
		return 2
	}
	return 1
}

// OccursIn reports whether r happens in the given week variant.
func (r Recurrence) OccursIn(w Week) bool {
	return r == Weekly || r == w.Recurrence()
}

func (r Recurrence) String() string {
	return string(r)
}

// Week is one half of the two-week cycle.
type Week string

const (
	A Week = "A"
	B Week = "B"
)

// ParseWeek accepts "A", "B", "WeekA" or "WeekB" in any case.
func ParseWeek(raw string) (Week, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "WEEK")
	switch Week(s) {
	case A, B:
		return Week(s), nil
	}
	return "", fmt.Errorf("schedule: unknown week %q (expected A or B)", raw)
}

// Recurrence is the WeekA/WeekB recurrence matching w.
func (w Week) Recurrence() Recurrence {
	return Recurrence("Week" + string(w))
}

// Title is the display title of the week, e.g. "Week A".
func (w Week) Title() string {
	return "Week " + string(w)
}
