package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/java/source"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and the supported source levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := settings.Level()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "jparse %s\nsource levels %s to %s (using %s)\n",
				version, source.MinLevel, source.MaxLevel, level)
			return nil
		},
	}
}
