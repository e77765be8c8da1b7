// Package hours sets the window of hours shown by week views.
package hours

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"tableflip.dev/unsched/pkg/snake"
	"tableflip.dev/unsched/pkg/store"
	"tableflip.dev/unsched/pkg/timeutil"
)

// Range reads a start and end hour, checks them with the boundary grammar
// and saves them. With neither set and Interactive off it prints the stored
// window.
type Range struct {
	Persistence store.Persistence
	Start       string
	End         string
	Interactive bool
	Prompter    snake.Prompter
	Out         io.Writer
}

func (r *Range) out() io.Writer {
	if r.Out == nil {
		return color.Output
	}
	return r.Out
}

func (r *Range) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("range requires persistence")
	}
	st, err := r.Persistence.Load(ctx)
	if err != nil {
		return err
	}

	start, end := r.Start, r.End
	if r.Interactive {
		if start, err = r.Prompter.String("Start hour", strconv.Itoa(st.StartHour), validateStart); err != nil {
			return err
		}
		if end, err = r.Prompter.String("End hour", strconv.Itoa(st.EndHour), validateEnd); err != nil {
			return err
		}
	}

	if start == "" && end == "" {
		_, _ = fmt.Fprintf(r.out(), "Visible hours: %s\n", st.Hours())
		return nil
	}
	if start == "" || end == "" {
		return errors.New("both a start and an end hour are required")
	}

	hours, err := timeutil.ParseHourRange(start, end)
	if err != nil {
		return err
	}
	st.StartHour, st.EndHour = hours.Start, hours.End
	if err := r.Persistence.Save(st); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(r.out(), "Visible hours set to %s\n", hours)
	return nil
}

func validateStart(s string) error {
	_, err := timeutil.ParseStartHour(s)
	return err
}

func validateEnd(s string) error {
	_, err := timeutil.ParseEndHour(s)
	return err
}
