package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a burst of writes is coalesced before a
// change is reported.
const DefaultDebounce = 500 * time.Millisecond

// EventType describes the nature of a schedule file change notification.
type EventType int

const (
	// EventFileChanged indicates the file was written or (re)created.
	EventFileChanged EventType = iota

	// EventFileRemoved indicates the file no longer exists. Watching
	// continues and a later create is reported as EventFileChanged.
	EventFileRemoved

	// EventWatchError indicates the watcher reported an error; callers
	// should refresh.
	EventWatchError
)

func (t EventType) String() string {
	switch t {
	case EventFileChanged:
		return "changed"
	case EventFileRemoved:
		return "removed"
	case EventWatchError:
		return "error"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is emitted by WatchFile when the watched file changes.
type Event struct {
	Type EventType
	Path string
	// At is when the burst that produced the event was flushed.
	At time.Time
}

// WatchFile streams change events for path until ctx is cancelled. The
// directory holding path is watched, so editors that replace the file on
// save are followed. Events within delay of each other are coalesced.
// The channel is closed once ctx is done or the watcher fails.
func WatchFile(ctx context.Context, path string, delay time.Duration) (<-chan Event, error) {
	if path == "" {
		return nil, errors.New("store: no file to watch")
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("store: directory %s not found", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		var mu sync.Mutex
		done := false
		send := func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if done {
				return
			}
			select {
			case events <- ev:
			default:
				// A slow consumer will re-read the file on the next event.
			}
		}
		stop := func() {
			mu.Lock()
			done = true
			mu.Unlock()
		}
		defer stop()

		throttle := newEventThrottle(delay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventWatchError, Path: abs}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				switch {
				case evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					// Some editors rename over the file; only report removal
					// if it is really gone.
					if _, err := os.Stat(abs); err != nil {
						throttle.Enqueue(Event{Type: EventFileRemoved, Path: abs}, send)
						continue
					}
					throttle.Enqueue(Event{Type: EventFileChanged, Path: abs}, send)
				case evt.Op&(fsnotify.Write|fsnotify.Create) != 0:
					throttle.Enqueue(Event{Type: EventFileChanged, Path: abs}, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so the report is rebuilt
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]Event),
	}
}

// Enqueue records ev, replacing any pending event for the same path, and
// restarts the quiet period.
func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Path] = ev

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.flush(send)
	})
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]Event)
	t.timer = nil
	t.mu.Unlock()

	now := time.Now()
	for _, ev := range pending {
		ev.At = now
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
