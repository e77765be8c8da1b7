package app

import (
	"tableflip.dev/unsched/pkg/analytics"
	"tableflip.dev/unsched/pkg/parser"
	"tableflip.dev/unsched/pkg/schedule"
)

// Snapshot is one parse pass over a schedule plus what was derived from it.
type Snapshot struct {
	Path   string
	Result *parser.Result
	// Analysis is nil when the pass failed.
	Analysis *analytics.Analysis
}

// Failed reports whether the pass had line errors.
func (s *Snapshot) Failed() bool {
	return s.Result != nil && s.Result.Failed()
}

// Summary is the encodable form of a snapshot, used for --output json|yaml
// and the MCP tools.
type Summary struct {
	Path        string                `json:"path,omitempty" yaml:"path,omitempty"`
	Failed      bool                  `json:"failed" yaml:"failed"`
	Errors      []*parser.LineError   `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings    []string              `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Categories  []schedule.Category   `json:"categories" yaml:"categories"`
	NonWork     []string              `json:"non_work" yaml:"non_work"`
	Commitments []schedule.Commitment `json:"commitments,omitempty" yaml:"commitments,omitempty"`
	Analysis    *analytics.Analysis   `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// Summary builds the encodable form. Commitments are included only when
// withCommitments is set, since they dominate the output size.
func (s *Snapshot) Summary(withCommitments bool) *Summary {
	out := &Summary{Path: s.Path, Analysis: s.Analysis}
	if s.Result == nil {
		return out
	}
	out.Failed = s.Result.Failed()
	out.Errors = s.Result.Errors
	out.Warnings = s.Result.Warnings
	out.Categories = s.Result.CategoryColors()
	out.NonWork = s.Result.NonWork
	if withCommitments {
		out.Commitments = s.Result.Commitments
	}
	return out
}
