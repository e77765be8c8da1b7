package printers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/timeutil"
)

const (
	cellWidth = 14
	// labelWidth fits both "03:00" and "12 PM".
	labelWidth = 5
)

// Segment is the part of a block drawn in one day column. A block that runs
// past midnight becomes two segments: the evening on its own day and the
// morning on the next day.
type Segment struct {
	Day   schedule.Day
	Start int // minutes past midnight
	End   int // minutes past midnight, up to 24*60
	Block schedule.Commitment
}

// Segments splits blocks into per-day segments. Triggers are ignored.
func Segments(cs []schedule.Commitment) []Segment {
	var out []Segment
	for _, c := range cs {
		if !c.IsBlock() {
			continue
		}
		start, end := c.Start.Minutes(), c.End.Minutes()
		if c.SpansMidnight {
			out = append(out,
				Segment{Day: c.Day, Start: start, End: 24 * 60, Block: c},
				Segment{Day: c.Day.Next(), Start: 0, End: end, Block: c})
			continue
		}
		out = append(out, Segment{Day: c.Day, Start: start, End: end, Block: c})
	}
	return out
}

// cell is what one hour of one day shows.
type cell struct {
	text  string
	color string
	start bool
}

// grid lays segments over the visible hours. Each hour shows the segment
// covering most of it; ties go to the earliest listed segment.
func grid(segs []Segment, hours timeutil.HourRange) map[schedule.Day][]cell {
	rows := hours.End - hours.Start
	g := make(map[schedule.Day][]cell, 7)
	for _, d := range schedule.Days() {
		g[d] = make([]cell, rows)
	}

	for _, d := range schedule.Days() {
		var daySegs []Segment
		for _, s := range segs {
			if s.Day == d {
				daySegs = append(daySegs, s)
			}
		}
		sort.SliceStable(daySegs, func(i, j int) bool {
			return daySegs[i].Start < daySegs[j].Start
		})

		prev := -1
		for r := 0; r < rows; r++ {
			lo, hi := (hours.Start+r)*60, (hours.Start+r+1)*60
			best, bestCover := -1, 0
			for i, s := range daySegs {
				cover := min(hi, s.End) - max(lo, s.Start)
				if cover > bestCover {
					best, bestCover = i, cover
				}
			}
			if best < 0 {
				prev = -1
				continue
			}
			s := daySegs[best]
			c := cell{color: s.Block.Color, text: "┆"}
			if best != prev {
				c.text = s.Block.Label
				if c.text == "" {
					c.text = "•"
				}
				c.start = true
			}
			g[d][r] = c
			prev = best
		}
	}
	return g
}

func fit(s string) string {
	return padding.String(truncate.StringWithTail(s, cellWidth, "…"), cellWidth)
}

// Week prints an hour-by-day grid of blocks within hours, followed by the
// day's triggers.
func (pp *PrettyPrint) Week(title string, cs []schedule.Commitment, hours timeutil.HourRange) {
	w := pp.out()
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	pp.Title(title)

	_, _ = fmt.Fprint(w, strings.Repeat(" ", labelWidth+1))
	for _, d := range schedule.Days() {
		_, _ = bold.Fprint(w, "│"+fit(d.Name()))
	}
	_, _ = fmt.Fprintln(w)

	g := grid(Segments(cs), hours)
	for r := 0; r < hours.End-hours.Start; r++ {
		label := timeutil.HourLabel(hours.Start+r, pp.Format)
		_, _ = faint.Fprintf(w, "%*s ", labelWidth, label)
		for _, d := range schedule.Days() {
			c := g[d][r]
			_, _ = fmt.Fprint(w, "│")
			if c.text == "" {
				_, _ = fmt.Fprint(w, strings.Repeat(" ", cellWidth))
				continue
			}
			_, _ = fmt.Fprint(w, pp.Swatch(fit(c.text), c.color))
		}
		_, _ = fmt.Fprintln(w)
	}

	triggers := Triggers(cs)
	if len(triggers) == 0 {
		_, _ = fmt.Fprintln(w)
		return
	}
	pp.NewLine()
	_, _ = bold.Fprintln(w, "Triggers")
	for _, d := range schedule.Days() {
		ts := triggers[d]
		if len(ts) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s\n", d.Name())
		for _, t := range ts {
			_, _ = fmt.Fprintf(w, "    %s → %s\n", pp.Swatch(t.At.Format(pp.Format), t.Color), t.Label)
		}
	}
	_, _ = fmt.Fprintln(w)
}

// Triggers groups triggers by day, sorted by time.
func Triggers(cs []schedule.Commitment) map[schedule.Day][]schedule.Commitment {
	out := make(map[schedule.Day][]schedule.Commitment)
	for _, c := range cs {
		if c.IsBlock() {
			continue
		}
		out[c.Day] = append(out[c.Day], c)
	}
	for d := range out {
		ts := out[d]
		sort.SliceStable(ts, func(i, j int) bool {
			return ts[i].At < ts[j].At
		})
	}
	return out
}

// Agenda prints the commitments day by day in time order, for narrow
// terminals.
func (pp *PrettyPrint) Agenda(title string, cs []schedule.Commitment) {
	w := pp.out()
	bold := color.New(color.Bold)

	pp.TitleWithCount(title, len(cs))
	for _, d := range schedule.Days() {
		var day []schedule.Commitment
		for _, c := range cs {
			if c.Day == d {
				day = append(day, c)
			}
		}
		if len(day) == 0 {
			continue
		}
		sort.SliceStable(day, func(i, j int) bool {
			return startOf(day[i]) < startOf(day[j])
		})

		_, _ = bold.Fprintln(w, d.Name())
		for _, c := range day {
			_, _ = fmt.Fprintf(w, "  %s  %s\n", pp.Swatch(fmt.Sprintf(" %-11s ", c.TimeRange(pp.Format)), c.Color), c.Label)
		}
	}
	_, _ = fmt.Fprintln(w)
}

func startOf(c schedule.Commitment) timeutil.TimeOfDay {
	if c.IsBlock() {
		return c.Start
	}
	return c.At
}
