// Package settings shows and changes the stored display settings.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/unsched/pkg/printers"
	"tableflip.dev/unsched/pkg/store"
	"tableflip.dev/unsched/pkg/timeutil"
)

type Settings struct {
	Persistence store.Persistence
	// ToggleOrientation flips landscape and portrait.
	ToggleOrientation bool
	// Orientation, when set, replaces the stored orientation.
	Orientation string
	// TimeFormat, when set, replaces the stored time format.
	TimeFormat string
	Encoding   string
	Out        io.Writer
}

func (s *Settings) out() io.Writer {
	if s.Out == nil {
		return color.Output
	}
	return s.Out
}

func (s *Settings) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("settings requires persistence")
	}
	st, err := s.Persistence.Load(ctx)
	if err != nil {
		return err
	}

	changed := false
	if s.Orientation != "" {
		o, err := store.ParseOrientation(s.Orientation)
		if err != nil {
			return err
		}
		st.Orientation, changed = o, true
	}
	if s.ToggleOrientation {
		st.Orientation, changed = st.Orientation.Toggle(), true
	}
	if s.TimeFormat != "" {
		f, err := timeutil.ParseFormat(s.TimeFormat)
		if err != nil {
			return err
		}
		st.TimeFormat, changed = f, true
	}
	if changed {
		if err := s.Persistence.Save(st); err != nil {
			return err
		}
	}

	if s.Encoding != printers.EncodingText {
		return printers.Encode(s.out(), s.Encoding, st)
	}
	Print(s.out(), st)
	return nil
}

// Print renders st as a two-column table.
func Print(w io.Writer, st *store.Settings) {
	bold := color.New(color.Bold)
	last := st.LastScheduleFile
	if last == "" {
		last = "-"
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Setting"), bold.Sprint("Value"))
	tbl.AddRow("Last schedule file", last)
	tbl.AddRow("Visible hours", st.Hours().String())
	tbl.AddRow("Orientation", string(st.Orientation))
	tbl.AddRow("Time format", string(st.TimeFormat))
	_, _ = fmt.Fprintln(w, tbl)
}
