// Package main provides the gridctl entry point.
package main

import (
	"fmt"
	"os"

	"gridmap/pkg/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	cfgFile string
	noColor bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "gridctl",
		Short:         "Inspect grid index mappings and nested headers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			cfg, err := config.LoadConfig(opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return config.ConfigureLogging(cfg.Logging)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is .gridctl.yaml in the working directory or $HOME)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(headersCmd())
	rootCmd.AddCommand(gridCmd(opts))
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gridctl %s\n", version)
		},
	}
}
