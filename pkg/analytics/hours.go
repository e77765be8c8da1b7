package analytics

import (
	"sort"

	"tableflip.dev/unsched/pkg/schedule"
)

// Row is one line of the hours report.
type Row struct {
	Category string `json:"category" yaml:"category"`
	// Hours is the total for the two-week cycle.
	Hours float64 `json:"hours" yaml:"hours"`
}

// PerWeek is the average hours per week.
func (r Row) PerWeek() float64 { return r.Hours / 2 }

// PerDay is the average hours per day.
func (r Row) PerDay() float64 { return r.Hours / 14 }

// Report is the category-hours breakdown of one two-week cycle.
type Report struct {
	// Rows holds every category with block hours plus the Unscheduled row,
	// sorted by hours descending. Ties keep first-seen order with
	// Unscheduled last among equals.
	Rows []Row `json:"rows" yaml:"rows"`
	// Hours maps each category, and Unscheduled, to its cycle hours.
	Hours       map[string]float64 `json:"-" yaml:"-"`
	Scheduled   float64            `json:"scheduled" yaml:"scheduled"`
	Unscheduled float64            `json:"unscheduled" yaml:"unscheduled"`
	// Work is the known categories outside the non-work set, sorted by name.
	Work    []string `json:"work" yaml:"work"`
	NonWork []string `json:"non_work" yaml:"non_work"`
	// WorkPlusUnscheduled is the hours of every work category plus the
	// unscheduled hours.
	WorkPlusUnscheduled float64 `json:"work_plus_unscheduled" yaml:"work_plus_unscheduled"`
}

// WorkPlusUnscheduledRow is the footer row of the report.
func (r *Report) WorkPlusUnscheduledRow() Row {
	return Row{Category: "Work+Unscheduled", Hours: r.WorkPlusUnscheduled}
}

// CategoryHours sums each category's block hours over the two-week cycle.
// Weekly blocks count twice. Blocks without a category and all triggers are
// left out of the category rows and so fall into Unscheduled.
//
// known is every category the parse saw; nonWork is the non-work list as
// written in the file.
func CategoryHours(commitments []schedule.Commitment, known *schedule.CategorySet, nonWork []string) *Report {
	hours := make(map[string]float64)
	var order []string
	for _, c := range commitments {
		if !c.IsBlock() || !c.HasCategory() {
			continue
		}
		if _, ok := hours[c.Category]; !ok {
			order = append(order, c.Category)
		}
		hours[c.Category] += c.CycleHours()
	}

	var scheduled float64
	rows := make([]Row, 0, len(order)+1)
	for _, name := range order {
		scheduled += hours[name]
		// A category named Unscheduled counts as scheduled time but shares
		// the single Unscheduled row.
		if name == Unscheduled {
			continue
		}
		rows = append(rows, Row{Category: name, Hours: hours[name]})
	}
	unscheduled := CycleHours - scheduled
	hours[Unscheduled] = unscheduled
	rows = append(rows, Row{Category: Unscheduled, Hours: unscheduled})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Hours > rows[j].Hours
	})

	work := known.Without(schedule.NewCategorySet(nonWork...))
	sort.Strings(work)

	total := unscheduled
	for _, name := range work {
		if name == Unscheduled {
			continue
		}
		total += hours[name]
	}

	return &Report{
		Rows:                rows,
		Hours:               hours,
		Scheduled:           scheduled,
		Unscheduled:         unscheduled,
		Work:                work,
		NonWork:             append([]string{}, nonWork...),
		WorkPlusUnscheduled: total,
	}
}
