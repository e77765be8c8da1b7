// Package colors prints the category legend of a schedule file.
package colors

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/unsched/pkg/app"
	"tableflip.dev/unsched/pkg/printers"
	"tableflip.dev/unsched/pkg/schedule"
	"tableflip.dev/unsched/pkg/timeutil"
)

type Colors struct {
	App      *app.Service
	Path     string
	Encoding string
	Format   timeutil.Format
	Out      io.Writer
}

func (c *Colors) out() io.Writer {
	if c.Out == nil {
		return color.Output
	}
	return c.Out
}

// Do prints every category with its resolved color. Categories are listed
// even when some lines failed to parse.
func (c *Colors) Do(ctx context.Context) error {
	path, remembered, err := c.App.Resolve(ctx, c.Path)
	if err != nil {
		return err
	}
	res, err := c.App.ParseFile(ctx, path)
	if err != nil {
		return err
	}
	cats := res.CategoryColors()

	if c.Encoding != printers.EncodingText {
		return printers.Encode(c.out(), c.Encoding, struct {
			Categories []schedule.Category `json:"categories" yaml:"categories"`
		}{cats})
	}

	if remembered {
		_, _ = fmt.Fprintf(c.out(), "Using last schedule file: %s\n", path)
	}
	pp := printers.New(c.out(), c.Format)
	pp.TitleWithCount("Categories", len(cats))
	pp.Categories(cats)
	pp.Warnings(res.Warnings)
	if res.Failed() {
		pp.ParseErrors(res.Errors)
		return errors.New("categories listed from a partial parse")
	}
	return nil
}
