package analytics

import (
	"tableflip.dev/unsched/pkg/schedule"
)

// Analysis bundles the reports for one parse pass.
type Analysis struct {
	Entries    int       `json:"entries" yaml:"entries"`
	Categories []string  `json:"categories" yaml:"categories"`
	Overlaps   []Overlap `json:"overlaps" yaml:"overlaps"`
	Report     *Report   `json:"report" yaml:"report"`
}

// Analyze runs overlap detection and the hours report over commitments.
func Analyze(commitments []schedule.Commitment, known *schedule.CategorySet, nonWork []string) *Analysis {
	overlaps := Overlaps(commitments)
	if overlaps == nil {
		overlaps = []Overlap{}
	}
	return &Analysis{
		Entries:    len(commitments),
		Categories: known.Names(),
		Overlaps:   overlaps,
		Report:     CategoryHours(commitments, known, nonWork),
	}
}
