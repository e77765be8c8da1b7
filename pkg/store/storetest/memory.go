// Package storetest provides an in-memory store.Persistence for tests.
package storetest

import (
	"context"
	"sync"
	"time"

	"tableflip.dev/unsched/pkg/store"
)

// Memory keeps settings and recent files in memory.
type Memory struct {
	mu       sync.Mutex
	settings *store.Settings
	recent   []store.RecentFile
}

// NewMemory starts from the default settings.
func NewMemory() *Memory {
	return &Memory{settings: store.DefaultSettings(nil)}
}

func (m *Memory) Load(_ context.Context) (*store.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *m.settings
	return &s, nil
}

func (m *Memory) Save(s *store.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.settings = &cp
	return nil
}

func (m *Memory) Touch(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.LastScheduleFile = path
	out := []store.RecentFile{{Path: path, UsedAt: time.Now()}}
	for _, r := range m.recent {
		if r.Path != path {
			out = append(out, r)
		}
	}
	if len(out) > store.MaxRecent {
		out = out[:store.MaxRecent]
	}
	m.recent = out
	return nil
}

func (m *Memory) Recent(_ context.Context) []store.RecentFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.RecentFile(nil), m.recent...)
}

func (m *Memory) BasePath() string { return "" }
