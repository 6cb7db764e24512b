package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	themeName  string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "rainbow",
		Short:         "Rainbow highlights Tailwind-style class modifiers in source files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "",
		"config file (default: ./.rainbow.yaml, then ~/.config/rainbow/config.yaml)")
	cmd.PersistentFlags().StringVarP(&flags.themeName, "theme", "t", "", "Theme to use instead of the configured one")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newScanCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newThemesCmd(flags))
	cmd.AddCommand(newPickCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
