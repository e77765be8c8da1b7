package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the day codes, recurrences and line syntax.",
		Example: `
unsched key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
