package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/commands/options"
	"tableflip.dev/unsched/pkg/runner/settings"
)

func addSettings(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	r := settings.Settings{}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the remembered display settings.",
		Example: `
unsched settings
unsched settings --toggle-orientation
unsched settings --time-format 12h
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			enc, err := oo.Encoding()
			if err != nil {
				return err
			}
			s, err := newSession(cmd.Context(), nil)
			if err != nil {
				return oo.HandleError(err)
			}
			r.Persistence = s.Persistence
			r.Encoding = enc
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&r.ToggleOrientation, "toggle-orientation", false, "Switch between landscape and portrait.")
	cmd.Flags().StringVar(&r.Orientation, "orientation", "", "Set the orientation: landscape or portrait.")
	cmd.Flags().StringVar(&r.TimeFormat, "time-format", "", "Set the time format: 24h or 12h.")

	topLevel.AddCommand(cmd)
}
