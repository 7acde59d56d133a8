package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neunenak/typst/pkg/document"
	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/pipeline"
	"github.com/neunenak/typst/pkg/render"
)

// stdoutPath selects standard output for --output.
const stdoutPath = "-"

// compileOpts holds the command-line flags for the compile command.
type compileOpts struct {
	formats   string
	lang      string
	primary   string
	secondary string
	output    string // output directory, or "-" for stdout
	watch     bool
	noCache   bool
	refresh   bool
}

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var opts compileOpts

	cmd := &cobra.Command{
		Use:   "compile <file|glob>...",
		Short: "Lay out documents and report alignment diagnostics",
		Long: `Compile lays out one or more TOML documents. Glob patterns such as
"docs/**/*.toml" are expanded. Artifacts are written next to each input
unless --output names a directory; text output for a single document goes
to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompile(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", render.FormatText, "output format(s): text, json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "document language (BCP 47), defaults to TYPST_LANG")
	cmd.Flags().StringVar(&opts.primary, "primary", "", "override the primary direction: ltr, rtl, ttb, btt")
	cmd.Flags().StringVar(&opts.secondary, "secondary", "", "override the secondary direction: ltr, rtl, ttb, btt")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output directory, or "-" for stdout`)
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "recompile when documents change")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the compile cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runCompile(ctx context.Context, patterns []string, opts compileOpts) error {
	formats := render.ParseFormats(opts.formats)
	if err := render.ValidateFormats(formats); err != nil {
		return err
	}
	if opts.lang == "" {
		opts.lang = c.Config.Lang
	}

	runner, err := c.newRunner(ctx, opts.noCache, "cli")
	if err != nil {
		return err
	}
	defer runner.Close()

	paths, err := document.Expand(patterns)
	if err != nil {
		return err
	}
	if len(paths) == 0 && !opts.watch {
		return errors.New(errors.ErrCodeFileNotFound, "no documents match %s", strings.Join(patterns, " "))
	}

	errCount, err := c.compileAll(ctx, runner, paths, formats, opts)
	if !opts.watch {
		if err != nil {
			return err
		}
		if errCount > 0 {
			return fmt.Errorf("%d error(s)", errCount)
		}
		return nil
	}
	if err != nil {
		printError("%v", err)
	}

	return watch(ctx, loggerFromContext(ctx), patterns, func(path string) {
		opts.refresh = false
		if _, err := c.compileAll(ctx, runner, []string{path}, formats, opts); err != nil {
			printError("%v", err)
		}
	})
}

// compileAll compiles each path and returns the number of error
// diagnostics. A document that fails to load stops the batch only when
// it is the sole input.
func (c *CLI) compileAll(ctx context.Context, runner *pipeline.Runner, paths, formats []string, opts compileOpts) (int, error) {
	prog := newProgress(loggerFromContext(ctx))

	var spinner *Spinner
	if len(paths) > 1 {
		spinner = newSpinnerWithContext(ctx, "Compiling...")
		spinner.Start()
	}

	type compiled struct {
		path string
		res  *pipeline.Result
	}
	var done []compiled
	var failures []string
	for _, path := range paths {
		if spinner != nil {
			spinner.SetMessage("Compiling " + path)
		}
		res, err := c.compileFile(ctx, runner, path, formats, opts)
		prog.record(err)
		if err != nil {
			if len(paths) == 1 {
				return 0, err
			}
			failures = append(failures, fmt.Sprintf("%s: %s", path, errors.UserMessage(err)))
			continue
		}
		done = append(done, compiled{path, res})
	}
	if spinner != nil {
		spinner.Stop()
	}

	errCount := 0
	for _, d := range done {
		errCount += countErrors(d.res.Diagnostics)
		if err := c.report(d.path, d.res, formats, opts); err != nil {
			return errCount, err
		}
	}
	for _, f := range failures {
		printError("%s", f)
	}
	if len(paths) > 1 {
		prog.finish("Compiled documents")
	}
	if len(failures) > 0 {
		return errCount, fmt.Errorf("%d of %d document(s) failed", len(failures), len(paths))
	}
	return errCount, nil
}

func (c *CLI) compileFile(ctx context.Context, runner *pipeline.Runner, path string, formats []string, opts compileOpts) (*pipeline.Result, error) {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "document not found: %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return runner.Execute(ctx, src, pipeline.Options{
		Lang:      opts.lang,
		Primary:   opts.primary,
		Secondary: opts.secondary,
		Formats:   formats,
		Path:      path,
		Refresh:   opts.refresh,
	})
}

// report prints the diagnostics of res and writes its artifacts.
func (c *CLI) report(path string, res *pipeline.Result, formats []string, opts compileOpts) error {
	toStdout := opts.output == stdoutPath ||
		(opts.output == "" && len(formats) == 1 && formats[0] == render.FormatText)

	if toStdout {
		for _, f := range formats {
			if _, err := stdout.Write(res.Artifacts[f]); err != nil {
				return err
			}
		}
		return nil
	}

	if countErrors(res.Diagnostics) > 0 {
		printError("%s", path)
	} else {
		printSuccess("%s", path)
	}
	for _, d := range res.Diagnostics {
		printDiagnostic(path, d)
	}
	printStats(res.Stats.Nodes, res.Stats.Calls, len(res.Diagnostics), res.CacheHit)

	for _, f := range formats {
		out := outputPath(opts.output, path, f)
		if err := os.WriteFile(out, res.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}
	return nil
}

// outputPath returns where the artifact of input in format is written:
// inside dir when set, next to input otherwise.
func outputPath(dir, input, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + render.Extension(format)
	if dir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(dir, base)
}
