package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/commands/options"
	"tableflip.dev/unsched/pkg/runner/week"
	"tableflip.dev/unsched/pkg/schedule"
)

func addWeek(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	so := &options.ScheduleOptions{}
	list := false

	cmd := &cobra.Command{
		Use:   "week A|B [file]",
		Short: "Show the commitments of one week of the cycle.",
		Example: `
unsched week A weeks.txt
unsched week B --list
`,
		ValidArgs: []string{"A", "B"},
		Args:      cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			w, err := schedule.ParseWeek(args[0])
			if err != nil {
				return err
			}
			enc, err := oo.Encoding()
			if err != nil {
				return err
			}
			s, err := newSession(cmd.Context(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			r := week.Week{
				App:      s.App,
				Path:     pathArg(args[1:]),
				Week:     w,
				List:     list,
				Settings: s.Settings,
				Encoding: enc,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddScheduleArgs(cmd, so)
	cmd.Flags().BoolVar(&list, "list", false, "Print a table instead of the hour grid.")

	topLevel.AddCommand(cmd)
}
