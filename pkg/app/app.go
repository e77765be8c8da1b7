package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tableflip.dev/unsched/pkg/analytics"
	"tableflip.dev/unsched/pkg/parser"
	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/store"
)

// Service provides high-level operations on schedule files.
// It wraps parsing, analytics and settings so commands and the MCP server can
// share logic. Every call parses the file in a fresh pass.
type Service struct {
	Parser *parser.Parser
	// Persistence remembers the last schedule file. Optional.
	Persistence store.Persistence
}

var (
	// ErrParseFailed is returned, wrapping the line errors, when a schedule
	// has lines that failed to parse. The partial result is still returned.
	ErrParseFailed = errors.New("app: parsing errors detected")
	// ErrNoSchedule is returned when no path is given and none is remembered.
	ErrNoSchedule = errors.New("app: no schedule file given and none remembered")
	// ErrNotFound wraps a schedule path that does not exist.
	ErrNotFound = errors.New("app: schedule file not found")
)

// New returns a Service with parser options applied.
func New(p store.Persistence, opts ...parser.Option) *Service {
	return &Service{Parser: parser.New(opts...), Persistence: p}
}

func (s *Service) parser() *parser.Parser {
	if s.Parser == nil {
		return parser.New()
	}
	return s.Parser
}

// Resolve picks the schedule path: path itself, or the remembered last file.
// remembered is true when the stored path was used.
func (s *Service) Resolve(ctx context.Context, path string) (resolved string, remembered bool, err error) {
	if path == "" {
		if s.Persistence == nil {
			return "", false, ErrNoSchedule
		}
		st, err := s.Persistence.Load(ctx)
		if err != nil {
			return "", false, err
		}
		if st.LastScheduleFile == "" {
			return "", false, ErrNoSchedule
		}
		path, remembered = st.LastScheduleFile, true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", remembered, err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return abs, remembered, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return abs, remembered, err
	}
	return abs, remembered, nil
}

// Remember stores path as the last used schedule file. It is a no-op without
// persistence.
func (s *Service) Remember(ctx context.Context, path string) error {
	if s.Persistence == nil {
		return nil
	}
	return s.Persistence.Touch(ctx, path)
}

// ParseFile runs one pass over the file at path. Line failures do not make
// this return an error; check Result.Failed.
func (s *Service) ParseFile(_ context.Context, path string) (*parser.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return s.parser().Parse(f)
}

// ParseText runs one pass over text.
func (s *Service) ParseText(text string) *parser.Result {
	return s.parser().ParseString(text)
}

// checked turns a failed pass into ErrParseFailed.
func checked(res *parser.Result) error {
	if res.Failed() {
		return fmt.Errorf("%w: %w", ErrParseFailed, res.Err())
	}
	return nil
}

// Analyze parses path and runs the analytics. When the pass failed, the
// snapshot carries the partial result without analysis, and ErrParseFailed
// is returned.
func (s *Service) Analyze(ctx context.Context, path string) (*Snapshot, error) {
	res, err := s.ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.snapshot(path, res)
}

// AnalyzeText is Analyze over text already in memory.
func (s *Service) AnalyzeText(text string) (*Snapshot, error) {
	return s.snapshot("", s.ParseText(text))
}

func (s *Service) snapshot(path string, res *parser.Result) (*Snapshot, error) {
	snap := &Snapshot{Path: path, Result: res}
	if err := checked(res); err != nil {
		return snap, err
	}
	snap.Analysis = analytics.Analyze(res.Commitments, res.Categories, res.NonWork)
	return snap, nil
}

// Week parses path and returns the commitments of week w.
func (s *Service) Week(ctx context.Context, path string, w schedule.Week) ([]schedule.Commitment, *parser.Result, error) {
	res, err := s.ParseFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if err := checked(res); err != nil {
		return nil, res, err
	}
	return analytics.SelectWeek(res.Commitments, w), res, nil
}
