package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/unsched/pkg/app"
	"tableflip.dev/unsched/pkg/store"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestRender(t *testing.T) {
	noColor(t)
	path := filepath.Join(t.TempDir(), "weeks.txt")
	require.NoError(t, os.WriteFile(path, []byte("@Work\nWeekly M 9a 5p Office\n"), 0o644))

	var buf bytes.Buffer
	stamp := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	w := &Watch{App: app.New(nil), Out: &buf, Now: func() time.Time { return stamp }}
	w.Render(context.Background(), path)

	out := buf.String()
	assert.Contains(t, out, "Source File Modified: ")
	assert.Contains(t, out, "Parsed 1 event entries across 1 categories")
	assert.Contains(t, out, "Report Generated: 2024-05-06 07:08:09")
	assert.NotContains(t, out, "\033[H", "no screen clearing off a terminal")
}

func TestRenderMissing(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	w := &Watch{App: app.New(nil), Out: &buf}
	w.Render(context.Background(), filepath.Join(t.TempDir(), "gone.txt"))
	assert.Contains(t, buf.String(), "schedule file not found")
}

func TestRenderParseErrors(t *testing.T) {
	noColor(t)
	path := filepath.Join(t.TempDir(), "weeks.txt")
	require.NoError(t, os.WriteFile(path, []byte("Weekly M 9x 5p Office\n"), 0o644))

	var buf bytes.Buffer
	w := &Watch{App: app.New(nil), Out: &buf}
	w.Render(context.Background(), path)
	assert.Contains(t, buf.String(), "Parsing errors detected.")
	assert.Contains(t, buf.String(), "Report Generated: ")
}

func TestValidatePoll(t *testing.T) {
	assert.NoError(t, ValidatePoll(""))
	assert.NoError(t, ValidatePoll("@every 1s"))
	assert.NoError(t, ValidatePoll("*/5 * * * *"))
	assert.NoError(t, ValidatePoll("0 */5 * * * *"))
	assert.Error(t, ValidatePoll("every now and then"))
}

func TestDoRefreshesOnChange(t *testing.T) {
	noColor(t)
	path := filepath.Join(t.TempDir(), "weeks.txt")
	require.NoError(t, os.WriteFile(path, []byte("@Work\nWeekly M 9a 5p Office\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	w := &Watch{App: app.New(nil), Path: path, Debounce: 20 * time.Millisecond, Out: out}
	done := make(chan error, 1)
	go func() { done <- w.Do(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "Report Generated") == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("@Work\nWeekly MT 9a 5p Office\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Parsed 2 event entries")
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestDoPolls(t *testing.T) {
	noColor(t)
	path := filepath.Join(t.TempDir(), "weeks.txt")
	require.NoError(t, os.WriteFile(path, []byte("Weekly M 9a 5p Office\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	w := &Watch{App: app.New(nil), Path: path, Poll: "@every 1s", Out: out}
	done := make(chan error, 1)
	go func() { done <- w.Do(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "Report Generated") >= 2
	}, 4*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestDoEndsWhenWatcherStops(t *testing.T) {
	noColor(t)
	path := filepath.Join(t.TempDir(), "weeks.txt")
	require.NoError(t, os.WriteFile(path, []byte("Weekly M 9a 5p Office\n"), 0o644))

	w := &Watch{
		App:  app.New(nil),
		Path: path,
		Poll: "@every 1h",
		Out:  &syncBuffer{},
		watchFile: func(context.Context, string, time.Duration) (<-chan store.Event, error) {
			ch := make(chan store.Event)
			close(ch)
			return ch, nil
		},
	}
	done := make(chan error, 1)
	go func() { done <- w.Do(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStopped)
	case <-time.After(3 * time.Second):
		t.Fatal("Do did not return after the watcher stopped")
	}
}
