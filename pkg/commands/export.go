package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/commands/options"
	"tableflip.dev/unsched/pkg/runner/export"
	"tableflip.dev/unsched/pkg/snake"
)

func addExport(topLevel *cobra.Command) {
	so := &options.ScheduleOptions{}
	ao := &options.AnchorOptions{}
	in := &options.InteractiveOptions{}
	e := export.Export{}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the schedule as an iCalendar file of recurring events.",
		Example: `
unsched export weeks.txt --out weeks.ics
unsched export --anchor 2024-9-2 --preview 2
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := newSession(cmd.Context(), so)
			if err != nil {
				return err
			}
			anchor, err := ao.GetAnchor(s.Config.Anchor(), s.Config.Location())
			if err != nil {
				return err
			}
			e.App = s.App
			e.Path = pathArg(args)
			e.Anchor = anchor
			e.Format = s.Settings.TimeFormat
			if in.Interactive {
				p := snake.Prompter{}
				e.Confirm = func(question string) (bool, error) {
					return p.Bool(question, false)
				}
			}
			return e.Do(cmd.Context())
		},
	}

	options.AddScheduleArgs(cmd, so)
	options.AddAnchorArgs(cmd, ao)
	options.InteractiveArgs(cmd, in)
	cmd.Flags().StringVar(&e.OutFile, "out", "", `File to write, "-" or empty for stdout.`)
	cmd.Flags().BoolVar(&e.Overwrite, "overwrite", false, "Replace an existing output file.")
	cmd.Flags().StringVar(&e.Name, "name", "", `Calendar name. Defaults to "unsched".`)
	cmd.Flags().IntVar(&e.Preview, "preview", 0, "List the occurrences of this many weeks instead of writing.")

	topLevel.AddCommand(cmd)
}
