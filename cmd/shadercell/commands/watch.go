package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shadercell/internal/app"
	"go.trai.ch/shadercell/internal/core/domain"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [pipelines...]",
		Short: "Rebuild pipelines whenever their shaders change",
		Long: "Watch opens every selected pipeline and accesses it once per frame, " +
			"rebuilding it when one of its shader files changes. A shader that " +
			"fails to compile keeps the previous pipeline. Stop with Ctrl-C.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			debounce, _ := cmd.Flags().GetDuration("debounce")
			trace, _ := cmd.Flags().GetBool("trace")
			dashboard, _ := cmd.Flags().GetBool("tui")

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Pipelines: args,
				Interval:  interval,
				Debounce:  debounce,
				Trace:     trace,
				TUI:       dashboard,
			})
		},
	}
	cmd.Flags().Duration("interval", domain.DefaultFrameInterval, "Frame loop interval")
	cmd.Flags().Duration("debounce", 0, "Quiet window before a change is reported (0 uses "+
		domain.DefaultDebounceWindow.String()+")")
	cmd.Flags().Bool("trace", false, "Export rebuild spans to stderr")
	cmd.Flags().Bool("tui", false, "Show an interactive dashboard instead of log output")
	return cmd
}
