package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/commands/options"
	"tableflip.dev/unsched/pkg/runner/analyze"
)

func addAnalyze(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	so := &options.ScheduleOptions{}
	commitments := false

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Report overlaps and weekly hours per category.",
		Example: `
unsched analyze weeks.txt
unsched analyze -o yaml --commitments
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			enc, err := oo.Encoding()
			if err != nil {
				return err
			}
			s, err := newSession(cmd.Context(), so)
			if err != nil {
				return oo.HandleError(err)
			}
			a := analyze.Analyze{
				App:         s.App,
				Path:        pathArg(args),
				Encoding:    enc,
				Commitments: commitments,
				Format:      s.Settings.TimeFormat,
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddScheduleArgs(cmd, so)
	cmd.Flags().BoolVar(&commitments, "commitments", false, "Include every parsed commitment in json or yaml output.")

	topLevel.AddCommand(cmd)
}
