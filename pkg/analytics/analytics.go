// Package analytics derives reports from a finished list of commitments.
// Every function is pure: inputs are read, never modified.
package analytics

import (
	"sort"

	"tableflip.dev/unsched/pkg/schedule"
)

const (
	// CycleHours is the number of hours in the two-week cycle.
	CycleHours = 2 * 7 * 24
	// Unscheduled names the row holding the hours no category claims.
	Unscheduled = "Unscheduled"
)

// SelectWeek returns the commitments that happen in week w: every Weekly
// commitment plus those whose recurrence is exactly Week{w}. Order is kept.
func SelectWeek(commitments []schedule.Commitment, w schedule.Week) []schedule.Commitment {
	out := make([]schedule.Commitment, 0, len(commitments))
	for _, c := range commitments {
		if c.Recurrence.OccursIn(w) {
			out = append(out, c)
		}
	}
	return out
}

// Overlap is a pair of blocks on the same day where Second starts before
// First ends.
type Overlap struct {
	Day    schedule.Day        `json:"day_code" yaml:"day_code"`
	First  schedule.Commitment `json:"first" yaml:"first"`
	Second schedule.Commitment `json:"second" yaml:"second"`
}

// BlocksOn returns the blocks on day d, stably sorted by start time.
func BlocksOn(commitments []schedule.Commitment, d schedule.Day) []schedule.Commitment {
	var blocks []schedule.Commitment
	for _, c := range commitments {
		if c.IsBlock() && c.Day == d {
			blocks = append(blocks, c)
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Start < blocks[j].Start
	})
	return blocks
}

// Overlaps scans each day's blocks in start order and reports every adjacent
// pair where the later block starts before the earlier one ends.
//
// Only neighbours are compared. A short block sitting between a long block
// and a third block hides any overlap between the long block and the third.
// End times are compared as clock times, so a block that runs past midnight
// only overlaps a later block starting before its end on the same clock.
func Overlaps(commitments []schedule.Commitment) []Overlap {
	var found []Overlap
	for _, d := range schedule.Days() {
		blocks := BlocksOn(commitments, d)
		for i := 1; i < len(blocks); i++ {
			prev, curr := blocks[i-1], blocks[i]
			if curr.Start < prev.End {
				found = append(found, Overlap{Day: d, First: prev, Second: curr})
			}
		}
	}
	return found
}
