package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/unsched/pkg/commands/options"
	"tableflip.dev/unsched/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	so := &options.ScheduleOptions{}
	var (
		transport string
		tools     []string
	)
	r := mcp.Runner{Version: "dev"}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the schedule tools over the Model Context Protocol.",
		Long: `Serve parse_schedule, analyze_schedule, select_week and parse_hour_range
to an MCP client. The default stdio transport suits clients that launch
unsched themselves; --transport http listens on --addr instead.`,
		Example: `
unsched mcp
unsched mcp --tools analyze_schedule,select_week
unsched mcp --transport http --addr 127.0.0.1:8765
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			r.Transport = t
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := newSession(cmd.Context(), so)
			if err != nil {
				return err
			}
			r.App = s.App
			r.Tools = tools
			return r.Do(cmd.Context())
		},
	}

	options.AddScheduleArgs(cmd, so)
	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportStdio), "Transport: stdio or http.")
	cmd.Flags().StringVar(&r.Addr, "addr", mcp.DefaultAddr, "Listen address for the http transport.")
	cmd.Flags().StringVar(&r.Path, "path", mcp.DefaultPath, "Endpoint path for the http transport.")
	cmd.Flags().StringSliceVar(&tools, "tools", nil,
		"Tools to serve. One or more of "+strings.Join(mcp.ToolNames(), ", ")+". Defaults to all.")

	topLevel.AddCommand(cmd)
}
