// Package key provides CLI helpers to display the schedule file legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/unsched/pkg/parser"
	"tableflip.dev/unsched/pkg/schedule"
)

// Key prints the day codes, the recurrences and the line syntax.
type Key struct {
	Out io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

var recurrenceMeaning = map[schedule.Recurrence]string{
	schedule.Weekly: "every week",
	schedule.WeekA:  "first week of the cycle only",
	schedule.WeekB:  "second week of the cycle only",
}

var syntax = [][2]string{
	{"# comment", "ignored, as are blank lines"},
	{"@Category", "lines below belong to Category"},
	{"@Category:#4E79A7", "same, with a fixed color"},
	{"Weekly MTWRF 9a 5p Office", "block: recurrence, days, start, end, label"},
	{"WeekA T 8:30 Standup", "trigger: recurrence, days, time, label"},
	{"Weekly S 10a 12p Run @Health", "trailing @Category applies to this line only"},
	{parser.NonWorkSection, "start of the non-work section, ended by an @ line"},
	{parser.NonWorkKey + " = Sleep, Meals", "categories that are not work"},
}

// Do renders the legend.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")

	days := make([][2]string, 0, 7)
	for _, d := range schedule.Days() {
		days = append(days, [2]string{d.String(), d.Name()})
	}
	k.Key(ctx, "Days", days)

	recs := make([][2]string, 0, 3)
	for _, r := range schedule.Recurrences() {
		recs = append(recs, [2]string{r.String(), recurrenceMeaning[r]})
	}
	k.Key(ctx, "Recurrence", recs)

	k.Key(ctx, "Line", syntax)
	return nil
}

// Key renders a two-column table under heading.
func (k *Key) Key(_ context.Context, heading string, rows [][2]string) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(heading), bold.Sprint("Meaning"))
	for _, r := range rows {
		tbl.AddRow(r[0], r[1])
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
	_, _ = fmt.Fprintln(k.out(), "")
}
