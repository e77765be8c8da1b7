package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60
)

var (
	// ErrInvalidTime is wrapped by every failure to read a time-of-day token.
	ErrInvalidTime = errors.New("invalid time of day")
	// ErrHourOutOfRange is wrapped when a boundary hour is outside its allowed range.
	ErrHourOutOfRange = errors.New("hour out of range")
	// ErrEndOnly is wrapped when 24/24:00 is used as a start hour.
	ErrEndOnly = errors.New("24 is only valid as an end hour")
	// ErrStartAfterEnd is wrapped when a start hour is not before its end hour.
	ErrStartAfterEnd = errors.New("start hour must be less than end hour")

	clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.|a|p)?$`)
)

// TimeError describes a token that could not be read as a time.
type TimeError struct {
	Token  string
	Reason string
	Err    error
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Token, e.Reason)
}

func (e *TimeError) Unwrap() error {
	return e.Err
}

// TimeOfDay is a wall-clock time stored as minutes past midnight, [0, 1440).
type TimeOfDay int

// Clock builds a TimeOfDay from an hour and minute.
func Clock(hour, minute int) TimeOfDay {
	return TimeOfDay(((hour*60+minute)%minutesPerDay + minutesPerDay) % minutesPerDay)
}

// ParseTimeOfDay reads the tokens used in schedule files: "9", "9a", "9am",
// "5pm", "10:30", "10:30p". Hours without a suffix are 0-23, with a suffix
// 1-12. "24" is not a time of day; see ParseEndHour.
func ParseTimeOfDay(token string) (TimeOfDay, error) {
	s := strings.ToLower(strings.TrimSpace(token))
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &TimeError{Token: token, Reason: "expected forms like 9a, 5pm, 14 or 10:30", Err: ErrInvalidTime}
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
		if minute > 59 {
			return 0, &TimeError{Token: token, Reason: "minutes must be 00-59", Err: ErrInvalidTime}
		}
	}

	switch suffix := m[3]; {
	case suffix == "":
		if hour > 23 {
			return 0, &TimeError{Token: token, Reason: "hour must be 0-23", Err: ErrInvalidTime}
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, &TimeError{Token: token, Reason: "12-hour times need an hour of 1-12", Err: ErrInvalidTime}
		}
		hour %= 12
		if suffix[0] == 'p' {
			hour += 12
		}
	}
	return Clock(hour, minute), nil
}

// MustParse is ParseTimeOfDay that panics. Intended for tests and constants.
func MustParse(token string) TimeOfDay {
	t, err := ParseTimeOfDay(token)
	if err != nil {
		panic(err)
	}
	return t
}

// IsTime reports whether token reads as a time of day.
func IsTime(token string) bool {
	_, err := ParseTimeOfDay(token)
	return err == nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Minutes is the number of minutes past midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// Hours is the time as fractional hours, e.g. 9:30 is 9.5.
func (t TimeOfDay) Hours() float64 { return float64(t) / 60 }

// String renders the zero-padded HH:MM form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Kitchen renders the 12-hour form, e.g. "9:30 AM".
func (t TimeOfDay) Kitchen() string {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if t.Hour() >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute(), suffix)
}

// Format renders t in the given display format.
func (t TimeOfDay) Format(f Format) string {
	if f == Format12h {
		return t.Kitchen()
	}
	return t.String()
}

// MarshalText renders HH:MM.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts anything ParseTimeOfDay accepts.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Between is the length of the interval from start to end, wrapping past
// midnight when end is earlier than start. The result is in [0, 24h).
func Between(start, end TimeOfDay) time.Duration {
	d := (int(end) - int(start) + minutesPerDay) % minutesPerDay
	return time.Duration(d) * time.Minute
}

// SpansMidnight reports whether an interval from start to end wraps past 24:00.
func SpansMidnight(start, end TimeOfDay) bool {
	return end < start
}

// Format selects how times are displayed.
type Format string

const (
	Format24h Format = "24h"
	Format12h Format = "12h"
)

// ParseFormat accepts "24h" or "12h"; empty means 24h.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return Format24h, nil
	case Format24h, Format12h:
		return f, nil
	}
	return Format24h, fmt.Errorf("unsupported time format %q (expected 24h or 12h)", raw)
}

// HourLabel renders an hour tick label, e.g. "09:00" or "9 AM".
func HourLabel(hour int, f Format) string {
	h := ((hour % 24) + 24) % 24
	if f == Format12h {
		h12 := h % 12
		if h12 == 0 {
			h12 = 12
		}
		suffix := "AM"
		if h >= 12 {
			suffix = "PM"
		}
		return fmt.Sprintf("%d %s", h12, suffix)
	}
	return fmt.Sprintf("%02d:00", h)
}
