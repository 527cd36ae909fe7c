package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/config"
)

var version = "0.1.0"

// settings is loaded before any subcommand runs.
var settings *config.Config

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "jparse",
		Short:        "Parse Java source files and their doc comments",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := []config.Option{config.WithFlags(cmd.Flags())}
			if configFile != "" {
				opts = append(opts, config.WithFile(configFile))
			}
			cfg, err := config.Load(".", opts...)
			if err != nil {
				return err
			}
			settings = cfg
			if cfg.NoColor {
				color.NoColor = true
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("source", "", "Java source level, for example 8 or 17")
	flags.Bool("enable-preview", false, "enable preview language features")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringVar(&configFile, "config", "", "config file (default .jparse.yaml in the current or home directory)")

	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newDocCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
