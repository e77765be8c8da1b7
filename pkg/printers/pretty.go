package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"

	"tableflip.dev/unsched/pkg/analytics"
	"tableflip.dev/unsched/pkg/colors"
	"tableflip.dev/unsched/pkg/parser"
	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/timeutil"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Format is how times are shown.
	Format timeutil.Format
	// Profile decides how category colors render. The zero value, Ascii,
	// prints no color codes.
	Profile termenv.Profile
}

// New returns a PrettyPrint on out that renders category colors when the
// terminal supports them.
func New(out io.Writer, format timeutil.Format) *PrettyPrint {
	profile := termenv.Ascii
	if !color.NoColor {
		profile = termenv.EnvColorProfile()
	}
	return &PrettyPrint{Out: out, Format: format, Profile: profile}
}

const ruleWidth = 52

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Section prints a "--- name ---" header preceded by a blank line.
func (pp *PrettyPrint) Section(name string) {
	h := color.New(color.Bold)
	_, _ = h.Fprintf(pp.out(), "\n--- %s ---\n", name)
}

// Swatch renders text on the category color.
func (pp *PrettyPrint) Swatch(text, bg string) string {
	hex := colors.Hex(bg)
	return pp.Profile.String(text).
		Background(pp.Profile.Color(hex)).
		Foreground(pp.Profile.Color(colors.Hex(colors.TextColorFor(bg)))).
		String()
}

// ParseErrors prints every line error and the closing advice.
func (pp *PrettyPrint) ParseErrors(errs []*parser.LineError) {
	if len(errs) == 0 {
		return
	}
	r := color.New(color.FgRed)
	for _, e := range errs {
		_, _ = r.Fprintln(pp.out(), e.Error())
	}
	_, _ = color.New(color.FgRed, color.Bold).Fprintln(pp.out(), "\nParsing errors detected. Please fix your schedule file.")
}

// Warnings prints non-fatal parse diagnostics.
func (pp *PrettyPrint) Warnings(warnings []string) {
	y := color.New(color.FgYellow)
	for _, w := range warnings {
		_, _ = y.Fprintf(pp.out(), "Warning: %s\n", w)
	}
}

// Overlaps prints the overlap findings.
func (pp *PrettyPrint) Overlaps(overlaps []analytics.Overlap) {
	pp.Section("Checking for overlaps")
	if len(overlaps) == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  No overlaps found.")
		return
	}
	y := color.New(color.FgYellow)
	for _, o := range overlaps {
		_, _ = y.Fprintf(pp.out(), "  Warning: Overlap on %s -> '%s' (%s) and '%s' (%s)\n",
			o.Day.Name(),
			o.First.Label, o.First.TimeRange(pp.Format),
			o.Second.Label, o.Second.TimeRange(pp.Format))
	}
}

func noneDefined(names []string) string {
	if len(names) == 0 {
		return "None defined"
	}
	return strings.Join(names, ", ")
}

// Report prints the weekly time allocation table.
func (pp *PrettyPrint) Report(r *analytics.Report) {
	w := pp.out()
	rule := strings.Repeat("-", ruleWidth)

	pp.Section("Weekly Time Allocation Analysis")
	_, _ = fmt.Fprintf(w, "NON-WORK Categories: %s\n", noneDefined(r.NonWork))
	_, _ = fmt.Fprintf(w, "WORK Categories:     %s\n", noneDefined(r.Work))
	_, _ = fmt.Fprintln(w, rule)

	_, _ = color.New(color.Bold).Fprintf(w, "%-15s | %-15s | %-15s\n", "Category", "Avg. Hours/Wk", "Avg. Hours/Day")
	_, _ = fmt.Fprintln(w, rule)
	for _, row := range r.Rows {
		pp.reportRow(row)
	}
	_, _ = fmt.Fprintln(w, rule)
	pp.reportRow(r.WorkPlusUnscheduledRow())
}

func (pp *PrettyPrint) reportRow(row analytics.Row) {
	_, _ = fmt.Fprintf(pp.out(), "%-15s | %-15.1f | %-15.1f\n", row.Category, row.PerWeek(), row.PerDay())
}

// Analysis prints the parse summary, overlaps and the allocation report.
func (pp *PrettyPrint) Analysis(a *analytics.Analysis) {
	_, _ = fmt.Fprintf(pp.out(), "Parsed %d event entries across %d categories\n", a.Entries, len(a.Categories))
	pp.Overlaps(a.Overlaps)
	pp.Report(a.Report)
}

// Commitments prints a table of commitments in the order given.
func (pp *PrettyPrint) Commitments(cs []schedule.Commitment) {
	if len(cs) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Time"), bold.Sprint("Event"), bold.Sprint("Category"), bold.Sprint("Recurrence"))
	for _, c := range cs {
		category := c.Category
		if category == "" {
			category = "-"
		}
		tbl.AddRow(c.Day.Name(), c.TimeRange(pp.Format), c.Label, pp.Swatch(" "+category+" ", c.Color), c.Recurrence)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Categories prints the category legend.
func (pp *PrettyPrint) Categories(cats []schedule.Category) {
	if len(cats) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no categories\n\n")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Category"), bold.Sprint("Color"), bold.Sprint("Kind"))
	for _, c := range cats {
		kind := "work"
		if c.NonWork {
			kind = "non-work"
		}
		tbl.AddRow(pp.Swatch(" "+c.Name+" ", c.Color), colors.Hex(c.Color), kind)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
