// Package week prints the commitments of one week of the two-week cycle.
package week

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/unsched/pkg/app"
	"tableflip.dev/unsched/pkg/log"
	"tableflip.dev/unsched/pkg/printers"
	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/store"
	"tableflip.dev/unsched/pkg/timeutil"
)

type Week struct {
	App  *app.Service
	Path string
	Week schedule.Week
	// List prints a table instead of the hour grid.
	List bool
	// Settings supplies the visible hours, the orientation and the time
	// format. Defaults apply when nil.
	Settings *store.Settings
	Encoding string
	Out      io.Writer
}

// View is the encoded form of a week.
type View struct {
	Week        schedule.Week         `json:"week" yaml:"week"`
	Hours       timeutil.HourRange    `json:"hours" yaml:"hours"`
	Commitments []schedule.Commitment `json:"commitments" yaml:"commitments"`
}

func (w *Week) out() io.Writer {
	if w.Out == nil {
		return color.Output
	}
	return w.Out
}

func (w *Week) settings() *store.Settings {
	if w.Settings == nil {
		return store.DefaultSettings(nil)
	}
	return w.Settings
}

func (w *Week) Do(ctx context.Context) error {
	path, remembered, err := w.App.Resolve(ctx, w.Path)
	if err != nil {
		return err
	}
	st := w.settings()
	pp := printers.New(w.out(), st.TimeFormat)
	if remembered && w.Encoding == printers.EncodingText {
		_, _ = fmt.Fprintf(w.out(), "Using last schedule file: %s\n", path)
	}

	cs, res, err := w.App.Week(ctx, path, w.Week)
	if res == nil {
		return err
	}
	if errors.Is(err, app.ErrParseFailed) {
		pp.Warnings(res.Warnings)
		pp.ParseErrors(res.Errors)
		return app.ErrParseFailed
	}

	if w.Encoding != printers.EncodingText {
		if err := printers.Encode(w.out(), w.Encoding, View{Week: w.Week, Hours: st.Hours(), Commitments: cs}); err != nil {
			return err
		}
	} else {
		pp.Warnings(res.Warnings)
		switch {
		case w.List:
			pp.TitleWithCount(w.Week.Title(), len(cs))
			pp.Commitments(cs)
		case st.Orientation == store.Portrait:
			pp.Agenda(w.Week.Title(), cs)
		default:
			pp.Week(w.Week.Title(), cs, st.Hours())
		}
	}

	if err := w.App.Remember(ctx, path); err != nil {
		log.L().With("path", path, "err", err).Warnf(ctx, "could not remember schedule file")
	}
	return nil
}
