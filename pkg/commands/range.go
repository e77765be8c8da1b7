package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/commands/options"
	"tableflip.dev/unsched/pkg/runner/hours"
)

func addRange(topLevel *cobra.Command) {
	in := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "range [START END]",
		Short: "Show or set the hours visible in the week grid.",
		Example: `
unsched range
unsched range 7a 24
unsched range -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := newSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			r := hours.Range{
				Persistence: s.Persistence,
				Interactive: in.Interactive,
			}
			if len(args) == 2 {
				r.Start, r.End = args[0], args[1]
			}
			return r.Do(cmd.Context())
		},
	}

	options.InteractiveArgs(cmd, in)

	topLevel.AddCommand(cmd)
}
