package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ha1tch/flowermap/pkg/feed"
)

func newFetchCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and print the configured feeds' headlines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup(cmd, *configFile)
			if err != nil {
				return err
			}
			defer closeLog()

			srcs, err := cfg.Sources()
			if err != nil {
				return err
			}
			titles := feed.FetchAll(cmd.Context(), feed.NewClient(cfg.Headlines.Timeout), srcs)
			out := cmd.OutOrStdout()
			for i, t := range titles {
				fmt.Fprintf(out, "%3d  %s\n", i+1, t)
			}
			if len(titles) == 0 {
				fmt.Fprintln(out, "No headlines.")
			}
			return nil
		},
	}
}
