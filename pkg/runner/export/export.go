// Package export writes a schedule file as an iCalendar feed.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/unsched/pkg/app"
	calendar "tableflip.dev/unsched/pkg/export"
	"tableflip.dev/unsched/pkg/log"
	"tableflip.dev/unsched/pkg/printers"
	"tableflip.dev/unsched/pkg/timeutil"
)

type Export struct {
	App  *app.Service
	Path string
	// OutFile is where the calendar goes; empty or "-" means Out.
	OutFile string
	// Overwrite allows replacing an existing OutFile. When it is false and
	// the file exists, Confirm is asked; without Confirm the export fails.
	Overwrite bool
	Confirm   func(question string) (bool, error)
	Anchor    time.Time
	Name      string
	// Preview lists the occurrences of this many weeks from the anchor
	// instead of writing the calendar.
	Preview int
	Format  timeutil.Format
	Out     io.Writer
}

func (e *Export) out() io.Writer {
	if e.Out == nil {
		return color.Output
	}
	return e.Out
}

func (e *Export) Do(ctx context.Context) error {
	path, remembered, err := e.App.Resolve(ctx, e.Path)
	if err != nil {
		return err
	}
	toStdout := e.OutFile == "" || e.OutFile == "-"
	if remembered && !toStdout {
		_, _ = fmt.Fprintf(e.out(), "Using last schedule file: %s\n", path)
	}

	res, err := e.App.ParseFile(ctx, path)
	if err != nil {
		return err
	}
	if res.Failed() {
		printers.New(e.out(), e.Format).ParseErrors(res.Errors)
		return app.ErrParseFailed
	}

	opt := calendar.Options{Anchor: e.Anchor, Name: e.Name}

	if e.Preview > 0 {
		from := e.Anchor
		occ, err := calendar.Occurrences(res.Commitments, opt, from, from.AddDate(0, 0, 7*e.Preview))
		if err != nil {
			return err
		}
		e.preview(occ)
		return nil
	}

	w := e.out()
	if !toStdout {
		f, err := e.create()
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	skipped, err := calendar.Write(w, res.Commitments, opt)
	if err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	for _, c := range skipped {
		log.L().With("line", c.Line, "recurrence", c.Recurrence.String()).Warnf(ctx, "skipping %q: unknown recurrence", c.Label)
	}

	if !toStdout {
		_, _ = fmt.Fprintf(e.out(), "Wrote %d events to %s\n", len(res.Commitments)-len(skipped), e.OutFile)
	}
	if err := e.App.Remember(ctx, path); err != nil {
		log.L().With("path", path, "err", err).Warnf(ctx, "could not remember schedule file")
	}
	return nil
}

func (e *Export) create() (*os.File, error) {
	if _, err := os.Stat(e.OutFile); err == nil && !e.Overwrite {
		if e.Confirm == nil {
			return nil, fmt.Errorf("%s exists, use --overwrite to replace it", e.OutFile)
		}
		ok, err := e.Confirm(fmt.Sprintf("Replace %s?", e.OutFile))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("export cancelled")
		}
	}
	return os.Create(e.OutFile)
}

func (e *Export) preview(occ []calendar.Occurrence) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Time"), bold.Sprint("Event"), bold.Sprint("Category"))
	for _, o := range occ {
		category := o.Commitment.Category
		if category == "" {
			category = "-"
		}
		tbl.AddRow(o.Start.Format("Mon 2006-01-02"), o.Commitment.TimeRange(e.Format), o.Commitment.Label, category)
	}
	_, _ = fmt.Fprintln(e.out(), tbl)
}
