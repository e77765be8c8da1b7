package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/unsched/pkg/runner/settings"
	"tableflip.dev/unsched/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	file := n.Config.File()
	if file == "" {
		file = "none, using defaults"
	}
	_, _ = fmt.Fprintln(out, "Config.file:", file)
	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.anchor:", n.Config.Anchor().Format("2006-01-02"), n.Config.Location())

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	st, err := n.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "")
	settings.Print(out, st)

	_, _ = fmt.Fprintf(out, "\nRecent schedule files:\n")
	found := 0
	for _, r := range n.Persistence.Recent(ctx) {
		_, _ = fmt.Fprintf(out, "  %s  %s\n", r.UsedAt.Format("2006-01-02 15:04"), r.Path)
		found++
	}
	if found == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no schedule files yet")
	}

	return nil
}
