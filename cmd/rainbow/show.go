package main

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rainbow/internal/config"
	"github.com/alexisbeaulieu97/rainbow/internal/render"
	"github.com/alexisbeaulieu97/rainbow/internal/workspace"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type showOptions struct {
	language string
	color    string
	legend   bool
}

func newShowCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a file with its class modifiers highlighted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Language id (default: derived from the file extension)")
	cmd.Flags().StringVar(&opts.color, "color", colorAuto, "Color output: auto, always or never")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "Print the matched keys after the file")

	return cmd
}

func runShow(cmd *cobra.Command, rootFlags *rootFlags, opts *showOptions, path string) error {
	painter, err := newPainter(cmd, opts.color)
	if err != nil {
		return err
	}

	app, err := loadApp(cmd, rootFlags)
	if err != nil {
		return err
	}

	text, err := workspace.ReadText(path)
	if err != nil {
		return newCommandError("show", fmt.Sprintf("reading %s", path), err, "Check that the file exists and is readable.")
	}

	language := opts.language
	if language == "" {
		language = config.LanguageForPath(path)
	}

	ranges := app.scanner.FindClassRanges(text, language, app.theme)
	app.log.WithFields(map[string]any{"file": path, "language": language, "keys": ranges.Len()}).Debug("scanned")

	out := cmd.OutOrStdout()
	fmt.Fprint(out, painter.Paint(text, ranges))
	if opts.legend && ranges.Len() > 0 {
		fmt.Fprintf(out, "\n\n%s\n", painter.Legend(ranges))
	}
	return nil
}

func newPainter(cmd *cobra.Command, mode string) (*render.Painter, error) {
	switch mode {
	case colorAuto:
		return render.NewPainter(cmd.OutOrStdout()), nil
	case colorAlways:
		return render.NewPainterWithProfile(termenv.TrueColor), nil
	case colorNever:
		return render.NewPainterWithProfile(termenv.Ascii), nil
	default:
		return nil, newCommandError(cmd.Name(), "choosing color mode", fmt.Errorf("unknown color mode %q", mode), "Use auto, always or never.")
	}
}
