package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rainbow/internal/config"
	"github.com/alexisbeaulieu97/rainbow/internal/render"
	"github.com/alexisbeaulieu97/rainbow/internal/tui"
	"github.com/alexisbeaulieu97/rainbow/internal/workspace"
)

type pickOptions struct {
	language string
	write    bool
}

// runProgram runs the picker; tests replace it.
var runProgram = func(m tui.Model) (tui.Model, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return m, err
	}
	return final.(tui.Model), nil
}

// isInteractive reports whether the picker can take over the terminal.
var isInteractive = func() bool {
	return render.IsTerminal(os.Stdin) && render.IsTerminal(os.Stdout)
}

func newPickCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &pickOptions{}

	cmd := &cobra.Command{
		Use:   "pick <file>",
		Short: "Choose a theme while previewing it on a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Language id (default: derived from the file extension)")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Save the chosen theme to the configuration file")

	return cmd
}

func runPick(cmd *cobra.Command, rootFlags *rootFlags, opts *pickOptions, path string) error {
	if !isInteractive() {
		return newCommandError("pick", "starting the picker", errors.New("stdin and stdout must be a terminal"), "Use 'rainbow show --theme <name>' in scripts.")
	}

	app, err := loadApp(cmd, rootFlags)
	if err != nil {
		return err
	}

	text, err := workspace.ReadText(path)
	if err != nil {
		return newCommandError("pick", fmt.Sprintf("reading %s", path), err, "Check that the file exists and is readable.")
	}

	language := opts.language
	if language == "" {
		language = config.LanguageForPath(path)
	}

	final, err := runProgram(tui.NewModel(tui.Options{
		Registry: app.registry,
		Current:  app.themeName,
		Path:     path,
		Text:     text,
		Language: language,
		Scanner:  app.scanner,
		Painter:  render.NewPainter(cmd.OutOrStdout()),
	}))
	if err != nil {
		return newCommandError("pick", "running the picker", err, "")
	}

	return finishPick(cmd, app, final, opts.write)
}

// finishPick reports the outcome and persists an accepted choice.
func finishPick(cmd *cobra.Command, app *appContext, final tui.Model, write bool) error {
	if !final.Accepted() {
		fmt.Fprintf(cmd.OutOrStdout(), "Kept theme %s\n", app.themeName)
		return nil
	}

	selected := final.Selected()
	if !write {
		fmt.Fprintf(cmd.OutOrStdout(), "Selected theme %s (pass --write to save it)\n", selected)
		return nil
	}

	target := app.writableConfigPath()
	if err := config.SetTheme(target, selected); err != nil {
		return newCommandError("pick", fmt.Sprintf("saving theme to %s", target), err, "Check file permissions and try again.")
	}
	app.log.WithFields(map[string]any{"theme": selected, "config": target}).Info("theme saved")
	fmt.Fprintf(cmd.OutOrStdout(), "Saved theme %s to %s\n", selected, target)
	return nil
}
