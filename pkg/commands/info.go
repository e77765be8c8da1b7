package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where settings are stored.",
		Example: `
unsched info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := newSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			i := info.Info{
				Config:      s.Config,
				Persistence: s.Persistence,
			}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
