package options

import (
	"github.com/spf13/cobra"
)

// ScheduleOptions
type ScheduleOptions struct {
	Strict bool
}

func AddScheduleArgs(cmd *cobra.Command, o *ScheduleOptions) {
	cmd.Flags().BoolVar(&o.Strict, "strict", false,
		"Treat an unknown recurrence as a line error instead of a warning.")
}
