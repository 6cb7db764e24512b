package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/rainbow/internal/scanner"
	"github.com/alexisbeaulieu97/rainbow/internal/workspace"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type scanOptions struct {
	format      string
	noGitignore bool
	concurrency int
}

func newScanCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan files and print the class ranges found in each",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.noGitignore, "no-gitignore", false, "Scan files ignored by .gitignore")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 0, "Files scanned in parallel (default: GOMAXPROCS)")

	return cmd
}

func runScan(cmd *cobra.Command, rootFlags *rootFlags, opts *scanOptions, args []string) error {
	switch opts.format {
	case formatText, formatJSON, formatYAML:
	default:
		return newCommandError("scan", "choosing output format", fmt.Errorf("unknown format %q", opts.format), "Use text, json or yaml.")
	}

	app, err := loadApp(cmd, rootFlags)
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	discover := workspace.OptionsFromConfig(app.cfg)
	discover.NoGitignore = opts.noGitignore
	files, err := workspace.Discover(cmd.Context(), roots, discover)
	if err != nil {
		return newCommandError("scan", "discovering files", err, "Check the paths and the excludes in your configuration.")
	}

	runner := workspace.NewRunner(workspace.RunnerOptions{
		Scanner:     app.scanner,
		Theme:       app.theme,
		Supports:    app.cfg.SupportsLanguage,
		Logger:      app.log,
		Concurrency: opts.concurrency,
	})
	results, err := runner.Scan(cmd.Context(), files)
	if err != nil {
		return newCommandError("scan", "scanning files", err, "")
	}

	for _, res := range results {
		if res.Err != nil {
			app.log.Error(res.Err, "scan failed")
		}
	}

	switch opts.format {
	case formatJSON:
		return renderScanJSON(cmd.OutOrStdout(), results)
	case formatYAML:
		return renderScanYAML(cmd.OutOrStdout(), results)
	default:
		return renderScanText(cmd.OutOrStdout(), results)
	}
}

type fileReport struct {
	Path     string            `json:"path" yaml:"path"`
	Language string            `json:"language" yaml:"language"`
	Skipped  string            `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty"`
	Ranges   *scanner.RangeMap `json:"ranges,omitempty" yaml:"ranges,omitempty"`
}

func reports(results []workspace.Result) []fileReport {
	out := make([]fileReport, 0, len(results))
	for _, res := range results {
		r := fileReport{
			Path:     res.File.Path,
			Language: res.File.Language,
			Skipped:  res.Skipped,
			Ranges:   res.Ranges,
		}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		out = append(out, r)
	}
	return out
}

func renderScanJSON(w io.Writer, results []workspace.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports(results))
}

func renderScanYAML(w io.Writer, results []workspace.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(reports(results)); err != nil {
		return err
	}
	return encoder.Close()
}

func renderScanText(w io.Writer, results []workspace.Result) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "FILE\tKEY\tRANGE")
	for _, res := range results {
		if res.Ranges == nil {
			continue
		}
		for _, g := range res.Ranges.Groups() {
			for _, r := range g.Ranges {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", res.File.Path, g.Key, formatRange(r))
			}
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	files, keys, ranges := summarize(results)
	fmt.Fprintf(w, "\n%d files, %d keys, %d ranges\n", files, keys, ranges)
	return nil
}

// formatRange renders r as 1-based line:column positions.
func formatRange(r scanner.Range) string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line+1, r.Start.Character+1, r.End.Line+1, r.End.Character+1)
}

func summarize(results []workspace.Result) (files, keys, ranges int) {
	for _, res := range results {
		if res.Ranges == nil {
			continue
		}
		files++
		keys += res.Ranges.Len()
		ranges += res.Ranges.RangeCount()
	}
	return files, keys, ranges
}
