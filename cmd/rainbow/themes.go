package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/rainbow/pkg/diff"
	rainbowerrors "github.com/alexisbeaulieu97/rainbow/pkg/errors"
)

type themesOptions struct {
	diffAgainst string
}

func newThemesCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &themesOptions{}

	cmd := &cobra.Command{
		Use:   "themes [name]",
		Short: "List available themes, or print one as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, rootFlags)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if opts.diffAgainst != "" {
					return runThemeDiff(cmd, app, opts.diffAgainst, args[0])
				}
				return runThemeShow(cmd, app, args[0])
			}
			return runThemesList(cmd, app)
		},
	}

	cmd.Flags().StringVar(&opts.diffAgainst, "diff", "", "Compare the theme with another theme")

	return cmd
}

func runThemesList(cmd *cobra.Command, app *appContext) error {
	for _, name := range app.registry.Names() {
		marker := " "
		if name == app.themeName {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
	}
	return nil
}

func runThemeShow(cmd *cobra.Command, app *appContext, name string) error {
	doc, err := themeYAML(app, name)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), doc)
	return nil
}

func runThemeDiff(cmd *cobra.Command, app *appContext, base, name string) error {
	before, err := themeYAML(app, base)
	if err != nil {
		return err
	}
	after, err := themeYAML(app, name)
	if err != nil {
		return err
	}

	out := diff.Lines(before, after, base, name)
	if out == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Themes %s and %s are identical\n", base, name)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func themeYAML(app *appContext, name string) (string, error) {
	t, ok := app.registry.Get(name)
	if !ok {
		err := rainbowerrors.NewThemeNotFoundError(name, app.registry.Names())
		return "", newCommandError("themes", fmt.Sprintf("looking up theme %q", name), err, "Run 'rainbow themes' to list themes.")
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(t); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
