package timeutil

import (
	"errors"
	"testing"
)

func TestParseStartHour(t *testing.T) {
	cases := map[string]int{
		"0":     0,
		"3":     3,
		"9:45":  9,
		"11p":   23,
		"23:59": 23,
	}
	for in, want := range cases {
		got, err := ParseStartHour(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", in, want, got)
		}
	}
}

func TestParseStartHourRejectsTwentyFour(t *testing.T) {
	for _, in := range []string{"24", "24:00"} {
		_, err := ParseStartHour(in)
		if !errors.Is(err, ErrEndOnly) {
			t.Fatalf("%q: expected ErrEndOnly, got %v", in, err)
		}
	}
}

func TestParseEndHour(t *testing.T) {
	cases := map[string]int{
		"24":    24,
		"24:00": 24,
		"1":     1,
		"22":    22,
		"21:15": 22,
		"23:30": 24,
		"10p":   22,
	}
	for in, want := range cases {
		got, err := ParseEndHour(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", in, want, got)
		}
	}
}

func TestParseEndHourRejectsMidnight(t *testing.T) {
	_, err := ParseEndHour("0")
	if !errors.Is(err, ErrHourOutOfRange) {
		t.Fatalf("expected ErrHourOutOfRange, got %v", err)
	}
	if _, err := ParseEndHour("25"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestParseHourRange(t *testing.T) {
	r, err := ParseHourRange("3", "22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != DefaultHourRange() {
		t.Fatalf("expected default range, got %v", r)
	}

	if _, err := ParseHourRange("10", "10"); !errors.Is(err, ErrStartAfterEnd) {
		t.Fatalf("expected ErrStartAfterEnd, got %v", err)
	}
	if _, err := ParseHourRange("9:30", "9:10"); err != nil {
		t.Fatalf("9:30 to 9:10 should widen to 9-10, got %v", err)
	}
	if _, err := ParseHourRange("24", "24"); !errors.Is(err, ErrEndOnly) {
		t.Fatalf("expected ErrEndOnly, got %v", err)
	}
	if _, err := ParseHourRange("x", "5"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestHourRangeValidate(t *testing.T) {
	bad := []HourRange{{Start: -1, End: 5}, {Start: 0, End: 25}, {Start: 24, End: 24}, {Start: 5, End: 4}}
	for _, r := range bad {
		if err := r.Validate(); err == nil {
			t.Fatalf("%v: expected error", r)
		}
	}
	if !DefaultHourRange().Contains(3) || DefaultHourRange().Contains(22.5) {
		t.Fatalf("unexpected Contains result")
	}
}
