package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediascout/internal/config"
	"mediascout/internal/report"
)

func newTrackersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "trackers",
		Short:       "List trackers and whether their credentials are set",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.LoadUnvalidated(ctx.configFlagValue())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			report.New(cmd.OutOrStdout()).Trackers(cfg.Trackers, cfg.Disabled)

			ready := 0
			for _, t := range cfg.Trackers {
				if t.Configured() {
					ready++
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d of %d trackers ready\n", ready, len(cfg.Trackers)+len(cfg.Disabled))
			if len(cfg.Disabled) > 0 {
				fmt.Fprintln(out, "Set <CODE>_API_KEY (and optionally <CODE>_URL) to enable a disabled tracker.")
			}
			return nil
		},
	}
}
