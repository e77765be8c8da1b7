// Package mcp provides the Model Context Protocol server integration for unsched.
package mcp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"tableflip.dev/unsched/pkg/analytics"
	"tableflip.dev/unsched/pkg/app"
	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/timeutil"
)

const (
	defaultCacheSize = 32
	defaultCacheTTL  = 10 * time.Minute
)

// Service coordinates schedule operations that are shared by the MCP tools
// and resources. Parse passes are cached by content hash; the cached
// snapshots are read-only.
type Service struct {
	App *app.Service

	cache *expirable.LRU[string, *app.Snapshot]
}

// ErrNoInput is returned when a tool gets neither text nor a path and no
// schedule file is remembered.
var ErrNoInput = errors.New("either text or path is required")

// WeekDTO is the result of select_week.
type WeekDTO struct {
	Week        schedule.Week         `json:"week"`
	Count       int                   `json:"count"`
	Commitments []schedule.Commitment `json:"commitments"`
}

// HourRangeDTO is the result of parse_hour_range.
type HourRangeDTO struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// NewService builds a service wrapper around a. A nil a parses with defaults
// and remembers nothing.
func NewService(a *app.Service) *Service {
	if a == nil {
		a = app.New(nil)
	}
	return &Service{
		App:   a,
		cache: expirable.NewLRU[string, *app.Snapshot](defaultCacheSize, nil, defaultCacheTTL),
	}
}

func contentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Snapshot runs a fresh pass over text, or returns the cached pass for the
// same content. Failed passes are cached too; they carry no analysis.
func (s *Service) Snapshot(text string) *app.Snapshot {
	key := contentKey(text)
	if snap, ok := s.cache.Get(key); ok {
		return snap
	}
	snap, _ := s.App.AnalyzeText(text)
	s.cache.Add(key, snap)
	return snap
}

// Load reads the schedule from text or, when text is empty, from path or
// the remembered last file.
func (s *Service) Load(ctx context.Context, text, path string) (*app.Snapshot, error) {
	if text != "" {
		return s.Snapshot(text), nil
	}
	resolved, _, err := s.App.Resolve(ctx, path)
	if err != nil {
		if errors.Is(err, app.ErrNoSchedule) {
			return nil, ErrNoInput
		}
		return nil, err
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		return nil, err
	}
	snap := *s.Snapshot(string(b))
	snap.Path = resolved
	return &snap, nil
}

// Parse returns the parse result with every commitment.
func (s *Service) Parse(ctx context.Context, text, path string) (*app.Summary, error) {
	snap, err := s.Load(ctx, text, path)
	if err != nil {
		return nil, err
	}
	return snap.Summary(true), nil
}

// Analyze returns overlaps and the allocation report. A failed pass is
// reported through Summary.Failed and Summary.Errors.
func (s *Service) Analyze(ctx context.Context, text, path string) (*app.Summary, error) {
	snap, err := s.Load(ctx, text, path)
	if err != nil {
		return nil, err
	}
	return snap.Summary(false), nil
}

// SelectWeek returns the commitments of one week variant.
func (s *Service) SelectWeek(ctx context.Context, text, path, week string) (*WeekDTO, error) {
	w, err := schedule.ParseWeek(week)
	if err != nil {
		return nil, err
	}
	snap, err := s.Load(ctx, text, path)
	if err != nil {
		return nil, err
	}
	if snap.Failed() {
		return nil, snap.Result.Err()
	}
	cs := analytics.SelectWeek(snap.Result.Commitments, w)
	return &WeekDTO{Week: w, Count: len(cs), Commitments: cs}, nil
}

// ParseHourRange validates a start/end hour pair with the boundary grammar.
func (s *Service) ParseHourRange(start, end string) (*HourRangeDTO, error) {
	r, err := timeutil.ParseHourRange(start, end)
	if err != nil {
		return nil, err
	}
	return &HourRangeDTO{Start: r.Start, End: r.End, Label: r.String()}, nil
}
