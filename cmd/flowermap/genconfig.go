package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/flowermap/pkg/config"
)

func newGenConfigCmd() *cobra.Command {
	var output, format string
	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: "Write a configuration file with every default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" || output == "-" {
				if format == "" {
					format = "toml"
				}
				return config.WriteDefaults(cmd.OutOrStdout(), format)
			}
			if format == "" {
				format = config.FormatFromPath(output)
			}

			if _, err := os.Stat(output); err == nil {
				return fmt.Errorf("%s already exists", output)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := config.WriteDefaults(f, format); err != nil {
				f.Close()
				os.Remove(output)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")
	cmd.Flags().StringVar(&format, "format", "", "toml, yaml or json; taken from the file extension by default")
	return cmd
}
