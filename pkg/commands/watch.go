package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/commands/options"
	"tableflip.dev/unsched/pkg/runner/watch"
	"tableflip.dev/unsched/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	so := &options.ScheduleOptions{}
	var (
		poll     string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-run the analysis every time the schedule file changes.",
		Example: `
unsched watch weeks.txt
unsched watch --poll "@every 30s"
`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return watch.ValidatePoll(poll)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := newSession(cmd.Context(), so)
			if err != nil {
				return err
			}
			w := watch.Watch{
				App:      s.App,
				Path:     pathArg(args),
				Debounce: debounce,
				Poll:     poll,
				Format:   s.Settings.TimeFormat,
			}
			return w.Do(cmd.Context())
		},
	}

	options.AddScheduleArgs(cmd, so)
	cmd.Flags().StringVar(&poll, "poll", "", `Also refresh on a cron spec, e.g. "*/5 * * * *" or "@every 30s".`)
	cmd.Flags().DurationVar(&debounce, "debounce", store.DefaultDebounce, "Quiet time after a change before refreshing.")

	topLevel.AddCommand(cmd)
}
