// Package export writes a schedule's two-week cycle as an iCalendar feed.
package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"tableflip.dev/unsched/pkg/colors"
	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/timeutil"
)

const localLayout = "20060102T150405"

// namespace seeds the name-based UIDs so re-exports keep event identity.
var namespace = uuid.MustParse("6f3c5e0c-7d0a-4e7b-9d7e-3b9e1a7c2f10")

// Options controls the export.
type Options struct {
	// Anchor is the Monday that starts Week A. Its location is the time zone
	// of every event.
	Anchor time.Time
	// Name is the calendar name. Defaults to "unsched".
	Name string
	// Stamp is the DTSTAMP of every event. Defaults to Anchor.
	Stamp time.Time
}

func (o Options) anchor() time.Time {
	a := o.Anchor
	return time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
}

// Event is one commitment placed on the calendar: its first occurrence and
// its recurrence rule.
type Event struct {
	UID        string
	Commitment schedule.Commitment
	Start      time.Time
	End        time.Time
	Rule       rrule.ROption
}

// RRule is the RRULE value, without DTSTART.
func (e Event) RRule() string {
	return e.Rule.RRuleString()
}

// Events places every commitment with a known recurrence. Commitments with
// an unknown recurrence are returned as skipped.
func Events(cs []schedule.Commitment, opt Options) (events []Event, skipped []schedule.Commitment) {
	anchor := opt.anchor()
	seen := make(map[string]int)
	for _, c := range cs {
		if !c.Recurrence.Known() {
			skipped = append(skipped, c)
			continue
		}

		offset := c.Day.Index()
		if c.Recurrence == schedule.WeekB {
			offset += 7
		}
		day := anchor.AddDate(0, 0, offset)

		var start, end time.Time
		if c.IsBlock() {
			start = at(day, c.Start.Hour(), c.Start.Minute())
			endDay := day
			if c.SpansMidnight {
				endDay = day.AddDate(0, 0, 1)
			}
			end = at(endDay, c.End.Hour(), c.End.Minute())
		} else {
			start = at(day, c.At.Hour(), c.At.Minute())
			end = start
		}

		interval := 2
		if c.Recurrence == schedule.Weekly {
			interval = 1
		}

		key := fmt.Sprintf("%s|%s|%s|%s|%s|%s", c.Recurrence, c.Day, c.Kind, c.TimeRange(timeutil.Format24h), c.Label, c.Category)
		seen[key]++
		if n := seen[key]; n > 1 {
			key = fmt.Sprintf("%s#%d", key, n)
		}

		events = append(events, Event{
			UID:        uuid.NewSHA1(namespace, []byte(key)).String() + "@unsched",
			Commitment: c,
			Start:      start,
			End:        end,
			Rule: rrule.ROption{
				Freq:     rrule.WEEKLY,
				Interval: interval,
				Dtstart:  start,
			},
		})
	}
	return events, skipped
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// Calendar builds the iCalendar for cs.
func Calendar(cs []schedule.Commitment, opt Options) (*ics.Calendar, []schedule.Commitment) {
	name := opt.Name
	if name == "" {
		name = "unsched"
	}
	stamp := opt.Stamp
	if stamp.IsZero() {
		stamp = opt.anchor()
	}
	tzid := opt.anchor().Location().String()

	cal := ics.NewCalendarFor("unsched")
	cal.SetMethod(ics.MethodPublish)
	cal.SetName(name)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(tzid)

	events, skipped := Events(cs, opt)
	for _, e := range events {
		c := e.Commitment
		ev := cal.AddEvent(e.UID)
		ev.SetDtStampTime(stamp)
		ev.SetProperty(ics.ComponentPropertyDtStart, e.Start.Format(localLayout), ics.WithTZID(tzid))
		ev.SetProperty(ics.ComponentPropertyDtEnd, e.End.Format(localLayout), ics.WithTZID(tzid))
		ev.AddRrule(e.RRule())

		summary := c.Label
		if summary == "" {
			summary = "(untitled)"
		}
		ev.SetSummary(summary)
		ev.SetDescription(fmt.Sprintf("%s %s %s", c.Recurrence, c.Day.Name(), c.TimeRange(timeutil.Format24h)))
		if c.HasCategory() {
			ev.AddCategory(c.Category)
		}
		ev.SetColor(colors.Hex(c.Color))
		if !c.IsBlock() {
			ev.SetTimeTransparency(ics.TransparencyTransparent)
		}
	}
	return cal, skipped
}

// Write serializes the calendar for cs to w.
func Write(w io.Writer, cs []schedule.Commitment, opt Options) ([]schedule.Commitment, error) {
	cal, skipped := Calendar(cs, opt)
	return skipped, cal.SerializeTo(w)
}

// Occurrence is one dated instance of a commitment.
type Occurrence struct {
	Commitment schedule.Commitment
	Start      time.Time
	End        time.Time
}

// Occurrences expands the events of cs into dated instances in [from, to).
func Occurrences(cs []schedule.Commitment, opt Options, from, to time.Time) ([]Occurrence, error) {
	events, _ := Events(cs, opt)
	var out []Occurrence
	for _, e := range events {
		r, err := rrule.NewRRule(e.Rule)
		if err != nil {
			return nil, fmt.Errorf("export: rule for %q: %w", e.Commitment.Label, err)
		}
		length := e.End.Sub(e.Start)
		for _, start := range r.Between(from, to, true) {
			if !start.Before(to) {
				continue
			}
			out = append(out, Occurrence{Commitment: e.Commitment, Start: start, End: start.Add(length)})
		}
	}
	sortOccurrences(out)
	return out, nil
}

func sortOccurrences(out []Occurrence) {
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
}
