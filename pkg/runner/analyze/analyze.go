// Package analyze prints the time allocation report for a schedule file.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/unsched/pkg/app"
	"tableflip.dev/unsched/pkg/log"
	"tableflip.dev/unsched/pkg/printers"
	"tableflip.dev/unsched/pkg/timeutil"
)

type Analyze struct {
	App  *app.Service
	Path string
	// Encoding is printers.EncodingText, EncodingJSON or EncodingYAML.
	Encoding string
	// Commitments adds every parsed commitment to encoded output.
	Commitments bool
	Format      timeutil.Format
	Out         io.Writer
}

func (a *Analyze) out() io.Writer {
	if a.Out == nil {
		return color.Output
	}
	return a.Out
}

// Do runs one pass and prints it. A failed pass prints its line errors and
// returns app.ErrParseFailed.
func (a *Analyze) Do(ctx context.Context) error {
	path, remembered, err := a.App.Resolve(ctx, a.Path)
	if err != nil {
		return err
	}
	if remembered && a.Encoding == printers.EncodingText {
		_, _ = fmt.Fprintf(a.out(), "Using last schedule file: %s\n", path)
	}

	snap, err := a.App.Analyze(ctx, path)
	if snap == nil {
		return err
	}
	logResult(ctx, snap)

	if a.Encoding != printers.EncodingText {
		if encErr := printers.Encode(a.out(), a.Encoding, snap.Summary(a.Commitments)); encErr != nil {
			return encErr
		}
	} else {
		pp := printers.New(a.out(), a.Format)
		pp.Warnings(snap.Result.Warnings)
		if snap.Failed() {
			pp.ParseErrors(snap.Result.Errors)
		} else {
			pp.Analysis(snap.Analysis)
		}
	}

	if errors.Is(err, app.ErrParseFailed) {
		if a.Encoding != printers.EncodingText {
			// Reported through the summary's failed flag.
			return nil
		}
		return app.ErrParseFailed
	}
	if err != nil {
		return err
	}
	if err := a.App.Remember(ctx, path); err != nil {
		log.L().With("path", path, "err", err).Warnf(ctx, "could not remember schedule file")
	}
	return nil
}

func logResult(ctx context.Context, snap *app.Snapshot) {
	l := log.L().With("path", snap.Path)
	for _, e := range snap.Result.Errors {
		l.With("line", e.Line, "text", e.Text).Debugf(ctx, "line error: %v", e.Err)
	}
	l.Debugf(ctx, "parsed %d commitments, %d errors, %d warnings",
		len(snap.Result.Commitments), len(snap.Result.Errors), len(snap.Result.Warnings))
}
