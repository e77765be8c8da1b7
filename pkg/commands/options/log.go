package options

import (
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Level string
	JSON  bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info, warn or error. Defaults to the log_level config key.")
	cmd.PersistentFlags().BoolVar(&o.JSON, "log-json", false,
		"Write log lines as JSON.")
}
