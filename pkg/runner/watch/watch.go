// Package watch re-runs the analysis whenever a schedule file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/unsched/pkg/app"
	"tableflip.dev/unsched/pkg/log"
	"tableflip.dev/unsched/pkg/printers"
	"tableflip.dev/unsched/pkg/store"
	"tableflip.dev/unsched/pkg/timeutil"
)

const clearScreen = "\033[H\033[2J"

// ErrStopped is returned when the file watcher ends before ctx is done.
var ErrStopped = errors.New("watch: file watcher stopped")

// specParser accepts five or six field specs and descriptors like "@every 1s".
var specParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidatePoll checks a --poll spec.
func ValidatePoll(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := specParser.Parse(spec); err != nil {
		return fmt.Errorf("poll spec %q: %w", spec, err)
	}
	return nil
}

type Watch struct {
	App  *app.Service
	Path string
	// Debounce delays a refresh until the file has been quiet this long.
	Debounce time.Duration
	// Poll is an optional cron spec that forces a refresh.
	Poll   string
	Format timeutil.Format
	Out    io.Writer
	// Now defaults to time.Now.
	Now func() time.Time

	// watchFile defaults to store.WatchFile.
	watchFile func(ctx context.Context, path string, delay time.Duration) (<-chan store.Event, error)
}

func (w *Watch) out() io.Writer {
	if w.Out == nil {
		return color.Output
	}
	return w.Out
}

func (w *Watch) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

func (w *Watch) clear() {
	f, ok := w.out().(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return
	}
	_, _ = fmt.Fprint(f, clearScreen)
}

// Do renders once, then again after every change until ctx is done. A
// missing file is reported and watched for.
func (w *Watch) Do(ctx context.Context) error {
	path, remembered, err := w.App.Resolve(ctx, w.Path)
	if err != nil && !errors.Is(err, app.ErrNotFound) {
		return err
	}
	if remembered {
		_, _ = fmt.Fprintf(w.out(), "Using last schedule file: %s\n", path)
	}
	if err := ValidatePoll(w.Poll); err != nil {
		return err
	}

	delay := w.Debounce
	if delay <= 0 {
		delay = store.DefaultDebounce
	}
	watchFile := w.watchFile
	if watchFile == nil {
		watchFile = store.WatchFile
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, err := watchFile(ctx, path, delay)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	refresh := make(chan struct{}, 1)

	if w.Poll != "" {
		c := cron.New(cron.WithParser(specParser))
		if _, err := c.AddFunc(w.Poll, func() {
			select {
			case refresh <- struct{}{}:
			default:
			}
		}); err != nil {
			return err
		}
		c.Start()
		g.Go(func() error {
			<-ctx.Done()
			<-c.Stop().Done()
			return nil
		})
	}

	g.Go(func() error {
		// Ending the render loop ends the poller too.
		defer cancel()
		w.Render(ctx, path)
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					if ctx.Err() != nil {
						return nil
					}
					return ErrStopped
				}
				l := log.L().With("path", ev.Path, "event", ev.Type.String())
				switch ev.Type {
				case store.EventWatchError:
					l.Warnf(ctx, "watch error")
				default:
					l.Debugf(ctx, "schedule file event")
					w.Render(ctx, path)
				}
			case <-refresh:
				w.Render(ctx, path)
			}
		}
	})

	return g.Wait()
}

// Render prints one fresh analysis of path.
func (w *Watch) Render(ctx context.Context, path string) {
	out := w.out()
	w.clear()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = color.New(color.FgRed).Fprintf(out, "schedule file not found: %s\n", path)
			return
		}
		_, _ = color.New(color.FgRed).Fprintf(out, "%v\n", err)
		return
	}

	_, _ = fmt.Fprintf(out, "Source File Modified: %s\n", info.ModTime().Format(time.DateTime))
	snap, err := w.App.Analyze(ctx, path)
	if snap == nil {
		_, _ = color.New(color.FgRed).Fprintf(out, "%v\n", err)
		return
	}

	pp := printers.New(out, w.Format)
	pp.Warnings(snap.Result.Warnings)
	if snap.Failed() {
		pp.ParseErrors(snap.Result.Errors)
	} else {
		pp.Analysis(snap.Analysis)
	}
	_, _ = fmt.Fprintf(out, "\nReport Generated: %s\n", w.now().Format(time.DateTime))
}
