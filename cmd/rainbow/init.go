package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rainbow/internal/config"
)

type initOptions struct {
	force bool
}

func newInitCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

func runInit(cmd *cobra.Command, rootFlags *rootFlags, opts *initOptions) error {
	path := rootFlags.configPath
	if path == "" {
		path = localConfigFile
	}

	if _, err := os.Stat(path); err == nil && !opts.force {
		return newCommandError("init", fmt.Sprintf("writing %s", path), fs.ErrExist, "Pass --force to overwrite it.")
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return newCommandError("init", fmt.Sprintf("checking %s", path), err, "")
	}

	cfg := config.Defaults()
	if rootFlags.themeName != "" {
		cfg.Theme = rootFlags.themeName
	}
	if err := config.ValidateConfig(&cfg); err != nil {
		return newCommandError("init", "validating configuration", err, "")
	}
	if err := config.Save(path, &cfg); err != nil {
		return newCommandError("init", fmt.Sprintf("writing %s", path), err, "Check directory permissions and try again.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
