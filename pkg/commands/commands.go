package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/unsched/pkg/app"
	"tableflip.dev/unsched/pkg/commands/options"
	"tableflip.dev/unsched/pkg/log"
	"tableflip.dev/unsched/pkg/parser"
	"tableflip.dev/unsched/pkg/store"
)

var (
	lo = &options.LogOptions{}

	// cfg is loaded once per invocation by the root command.
	cfg    store.Config
	cfgErr error
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use: "unsched",
		Short: base.Wrap80("Analyze a recurring two-week schedule: hours per category, " +
			"overlaps, week views and calendar export."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, cfgErr = store.LoadConfig()
			setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, lo)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAnalyze(topLevel)
	addWeek(topLevel)
	addRange(topLevel)
	addSettings(topLevel)
	addWatch(topLevel)
	addExport(topLevel)
	addColors(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func setupLogging() {
	level := lo.Level
	if level == "" && cfg != nil {
		level = cfg.LogLevel()
	}
	encoding := "console"
	if lo.JSON {
		encoding = "json"
	}
	log.Set(log.Init(log.ZapConfig{
		Level:        level,
		Encoding:     encoding,
		ColorEnabled: !color.NoColor,
	}))
}

func config() (store.Config, error) {
	if cfg == nil && cfgErr == nil {
		cfg, cfgErr = store.LoadConfig()
	}
	if cfgErr != nil {
		return nil, cfgErr
	}
	return cfg, nil
}

// session is what schedule commands share: the config, the settings store
// and a schedule service parsing with the configured palette.
type session struct {
	Config      store.Config
	Persistence store.Persistence
	App         *app.Service
	Settings    *store.Settings
}

func newSession(ctx context.Context, so *options.ScheduleOptions) (*session, error) {
	c, err := config()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(c)
	if err != nil {
		return nil, err
	}
	st, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}

	strict := so != nil && so.Strict
	svc := app.New(p,
		parser.WithPalette(c.Palette()),
		parser.WithStrictRecurrence(strict),
		parser.WithWarn(func(msg string) {
			log.L().Debugf(ctx, "parse warning: %s", msg)
		}),
	)
	return &session{Config: c, Persistence: p, App: svc, Settings: st}, nil
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
