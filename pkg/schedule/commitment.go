package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"tableflip.dev/unsched/pkg/timeutil"
)

// Kind distinguishes blocks, which occupy time, from triggers, which mark a
// single moment.
type Kind string

const (
	KindBlock   Kind = "block"
	KindTrigger Kind = "trigger"
)

// Commitment is one scheduled item on one day. Values are built once by the
// parser and never mutated.
type Commitment struct {
	Recurrence Recurrence
	Day        Day
	Kind       Kind

	// Start and End are set for blocks; At is set for triggers.
	Start         timeutil.TimeOfDay
	End           timeutil.TimeOfDay
	SpansMidnight bool
	At            timeutil.TimeOfDay

	Label    string
	Category string
	Color    string

	// Line is the 1-indexed source line the commitment came from.
	Line int
}

// commitmentView is the wire shape: block fields and trigger fields are only
// present for their kind, so 00:00 survives encoding.
type commitmentView struct {
	Recurrence    Recurrence          `json:"recurrence" yaml:"recurrence"`
	Day           Day                 `json:"day_code" yaml:"day_code"`
	Kind          Kind                `json:"type" yaml:"type"`
	Start         *timeutil.TimeOfDay `json:"start,omitempty" yaml:"start,omitempty"`
	End           *timeutil.TimeOfDay `json:"end,omitempty" yaml:"end,omitempty"`
	SpansMidnight *bool               `json:"spans_midnight,omitempty" yaml:"spans_midnight,omitempty"`
	At            *timeutil.TimeOfDay `json:"time,omitempty" yaml:"time,omitempty"`
	Label         string              `json:"event" yaml:"event"`
	Category      *string             `json:"category" yaml:"category"`
	Color         string              `json:"color" yaml:"color"`
	Line          int                 `json:"line,omitempty" yaml:"line,omitempty"`
}

func (c Commitment) view() commitmentView {
	v := commitmentView{
		Recurrence: c.Recurrence,
		Day:        c.Day,
		Kind:       c.Kind,
		Label:      c.Label,
		Color:      c.Color,
		Line:       c.Line,
	}
	if c.IsBlock() {
		start, end, spans := c.Start, c.End, c.SpansMidnight
		v.Start, v.End, v.SpansMidnight = &start, &end, &spans
	} else {
		at := c.At
		v.At = &at
	}
	if c.HasCategory() {
		category := c.Category
		v.Category = &category
	}
	return v
}

// MarshalJSON encodes c in the view shape.
func (c Commitment) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.view())
}

// MarshalYAML encodes c in the view shape.
func (c Commitment) MarshalYAML() (interface{}, error) {
	return c.view(), nil
}

// NewBlock builds a block commitment; SpansMidnight is derived from the times.
func NewBlock(rec Recurrence, day Day, start, end timeutil.TimeOfDay, label, category, color string) Commitment {
	return Commitment{
		Recurrence:    rec,
		Day:           day,
		Kind:          KindBlock,
		Start:         start,
		End:           end,
		SpansMidnight: timeutil.SpansMidnight(start, end),
		Label:         label,
		Category:      category,
		Color:         color,
	}
}

// NewTrigger builds a point-in-time commitment.
func NewTrigger(rec Recurrence, day Day, at timeutil.TimeOfDay, label, category, color string) Commitment {
	return Commitment{
		Recurrence: rec,
		Day:        day,
		Kind:       KindTrigger,
		At:         at,
		Label:      label,
		Category:   category,
		Color:      color,
	}
}

// IsBlock reports whether c has a start and end.
func (c Commitment) IsBlock() bool {
	return c.Kind == KindBlock
}

// HasCategory reports whether c was categorized.
func (c Commitment) HasCategory() bool {
	return c.Category != ""
}

// Duration is the length of a block, wrapping past midnight. Triggers have
// no duration.
func (c Commitment) Duration() time.Duration {
	if !c.IsBlock() {
		return 0
	}
	return timeutil.Between(c.Start, c.End)
}

// CycleHours is the number of hours the commitment occupies in one two-week
// cycle: its duration times the recurrence multiplier.
func (c Commitment) CycleHours() float64 {
	return c.Duration().Hours() * float64(c.Recurrence.Multiplier())
}

// TimeRange renders "HH:MM-HH:MM" for blocks and "HH:MM" for triggers.
func (c Commitment) TimeRange(f timeutil.Format) string {
	if c.IsBlock() {
		return fmt.Sprintf("%s-%s", c.Start.Format(f), c.End.Format(f))
	}
	return c.At.Format(f)
}

func (c Commitment) String() string {
	return fmt.Sprintf("%s %s %s %s", c.Recurrence, c.Day, c.TimeRange(timeutil.Format24h), c.Label)
}
