package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/unsched/pkg/timeutil"
)

const (
	settingsKey  = "settings"
	recentPrefix = "recent"
	// MaxRecent bounds how many schedule files Recent returns.
	MaxRecent = 10
)

// Orientation decides how week views are laid out: a landscape hour grid or
// a portrait day-by-day agenda.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Toggle returns the other orientation.
func (o Orientation) Toggle() Orientation {
	if o == Portrait {
		return Landscape
	}
	return Portrait
}

// ParseOrientation accepts "landscape" or "portrait" in any case.
func ParseOrientation(raw string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(raw))); o {
	case Landscape, Portrait:
		return o, nil
	}
	return "", fmt.Errorf("store: unknown orientation %q (expected landscape or portrait)", raw)
}

// Settings are the user choices remembered between runs.
type Settings struct {
	LastScheduleFile string          `json:"last_schedule_file" yaml:"last_schedule_file"`
	StartHour        int             `json:"start_hour" yaml:"start_hour"`
	EndHour          int             `json:"end_hour" yaml:"end_hour"`
	Orientation      Orientation     `json:"orientation" yaml:"orientation"`
	TimeFormat       timeutil.Format `json:"time_format" yaml:"time_format"`
}

// DefaultSettings seeds settings from cfg.
func DefaultSettings(cfg Config) *Settings {
	hours := timeutil.DefaultHourRange()
	format := timeutil.Format24h
	if cfg != nil {
		hours = cfg.Hours()
		format = cfg.TimeFormat()
	}
	return &Settings{
		StartHour:   hours.Start,
		EndHour:     hours.End,
		Orientation: Landscape,
		TimeFormat:  format,
	}
}

// Hours is the stored visible window.
func (s *Settings) Hours() timeutil.HourRange {
	return timeutil.HourRange{Start: s.StartHour, End: s.EndHour}
}

// Validate checks the stored values.
func (s *Settings) Validate() error {
	if err := s.Hours().Validate(); err != nil {
		return err
	}
	if _, err := ParseOrientation(string(s.Orientation)); err != nil {
		return err
	}
	if _, err := timeutil.ParseFormat(string(s.TimeFormat)); err != nil {
		return err
	}
	return nil
}

// RecentFile is a schedule file that was used successfully.
type RecentFile struct {
	Path   string    `json:"path" yaml:"path"`
	UsedAt time.Time `json:"used_at" yaml:"used_at"`
}

// Persistence stores settings and the recent-file history.
type Persistence interface {
	// Load returns the stored settings, or defaults when none are stored.
	Load(ctx context.Context) (*Settings, error)
	Save(s *Settings) error
	// Touch records path as the last schedule file and adds it to the
	// recent history.
	Touch(ctx context.Context, path string) error
	// Recent lists recently used schedule files, newest first.
	Recent(ctx context.Context) []RecentFile
	BasePath() string
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: settings path unknown")
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		defaults: DefaultSettings(cfg),
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	defaults *Settings
}

func (p *persistence) BasePath() string {
	return p.basePath
}

func (p *persistence) Load(_ context.Context) (*Settings, error) {
	s := *p.defaults
	if !p.d.Has(settingsKey) {
		return &s, nil
	}
	val, err := p.d.Read(settingsKey)
	if err != nil {
		return nil, fmt.Errorf("store: read settings: %w", err)
	}
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("store: decode settings: %w", err)
	}
	if s.Orientation == "" {
		s.Orientation = p.defaults.Orientation
	}
	if s.TimeFormat == "" {
		s.TimeFormat = p.defaults.TimeFormat
	}
	if s.Hours().Validate() != nil {
		s.StartHour, s.EndHour = p.defaults.StartHour, p.defaults.EndHour
	}
	return &s, nil
}

func (p *persistence) Save(s *Settings) error {
	if s == nil {
		return errors.New("store: nil settings")
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("store: invalid settings: %w", err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return p.d.Write(settingsKey, b)
}

func (p *persistence) Touch(ctx context.Context, path string) error {
	s, err := p.Load(ctx)
	if err != nil {
		return err
	}
	s.LastScheduleFile = path
	if err := p.Save(s); err != nil {
		return err
	}

	b, err := json.Marshal(RecentFile{Path: path, UsedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	if err := p.d.Write(recentKey(path), b); err != nil {
		return err
	}
	p.prune(ctx)
	return nil
}

func (p *persistence) Recent(ctx context.Context) []RecentFile {
	all := make([]RecentFile, 0)
	for key := range p.d.KeysPrefix(recentPrefix+"-", ctx.Done()) {
		val, err := p.d.Read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		var rf RecentFile
		if err := json.Unmarshal(val, &rf); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		if rf.Path == "" {
			rf.Path = fromFileName(strings.TrimPrefix(key, recentPrefix+"-"))
		}
		all = append(all, rf)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UsedAt.After(all[j].UsedAt)
	})
	if len(all) > MaxRecent {
		all = all[:MaxRecent]
	}
	return all
}

// prune drops history beyond MaxRecent.
func (p *persistence) prune(ctx context.Context) {
	all := p.Recent(context.WithoutCancel(ctx))
	keep := make(map[string]struct{}, len(all))
	for _, rf := range all {
		keep[recentKey(rf.Path)] = struct{}{}
	}
	for key := range p.d.KeysPrefix(recentPrefix+"-", ctx.Done()) {
		if _, ok := keep[key]; !ok {
			_ = p.d.Erase(key)
		}
	}
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// recentKey makes `recent-<hex path>` so the key holds no separators.
func recentKey(path string) string {
	return fmt.Sprintf("%s-%s", recentPrefix, toFileName(path))
}

func toFileName(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromFileName(s string) string {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromFileName: %s", err)
	}
	return string(b)
}
