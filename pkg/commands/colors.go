package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/commands/options"
	"tableflip.dev/unsched/pkg/runner/colors"
)

func addColors(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "colors [file]",
		Short: "Print the category legend with assigned colors.",
		Example: `
unsched colors weeks.txt
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			enc, err := oo.Encoding()
			if err != nil {
				return err
			}
			s, err := newSession(cmd.Context(), nil)
			if err != nil {
				return oo.HandleError(err)
			}
			c := colors.Colors{
				App:      s.App,
				Path:     pathArg(args),
				Encoding: enc,
				Format:   s.Settings.TimeFormat,
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
