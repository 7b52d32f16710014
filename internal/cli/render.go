package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/dotwalk/pkg/errors"
	"github.com/matzehuels/dotwalk/pkg/graph"
	dotio "github.com/matzehuels/dotwalk/pkg/io"
	"github.com/matzehuels/dotwalk/pkg/pipeline"
)

// stdio names standard input as a render input and standard output as an output.
const stdio = "-"

// renderOpts holds the command-line flags for the render command.
// Render flags are bound to flags and merged over the config file by
// renderOptions; only flags set on the command line take effect.
type renderOpts struct {
	output      string // output file, or output directory with several inputs
	inputFormat string // document format, overrides the file extension
	noCache     bool
	refresh     bool
	flags       pipeline.Options
}

// renderJob is one input document and where its output goes.
type renderJob struct {
	input  string
	output string // stdio for standard output
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render graph documents as DOT, SVG or PNG",
		Long: `Render graph documents as DOT, SVG or PNG.

Documents are JSON, TOML or YAML, picked by file extension or --input-format.
Use - to read a document from standard input.

With a single input and no --output, DOT goes to standard output and SVG or
PNG goes next to the input (graph.json -> graph.svg). With several inputs,
--output names a directory. Inputs are rendered in parallel.

SVG and PNG are laid out by Graphviz and cached; --no-cache disables the
cache and --refresh ignores cached results.`,
		Example: `  dotwalk render graph.json
  dotwalk render -f svg --layout neato graph.yaml -o graph.svg
  dotwalk render -f png -o out/ a.json b.toml c.yaml
  cat graph.json | dotwalk render --no-edge-labels -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.renderOptions(cmd, &opts)
			if err := popts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			var inFormat dotio.Format
			if opts.inputFormat != "" {
				f, err := dotio.ParseFormat(opts.inputFormat)
				if err != nil {
					return err
				}
				inFormat = f
			}
			jobs, err := planJobs(args, opts.output, popts.Format)
			if err != nil {
				return err
			}
			if opts.noCache && opts.refresh {
				printWarning(cmd.ErrOrStderr(), "--refresh has no effect with --no-cache")
			}
			return c.runRender(cmd, jobs, inFormat, popts, opts.noCache)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file, or directory with several inputs (- for stdout)")
	f.StringVarP(&opts.inputFormat, "input-format", "i", "", "document format: json, toml, yaml (default from extension)")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached layouts")
	f.StringVarP(&opts.flags.Format, "format", "f", pipeline.DefaultFormat, "output format: "+strings.Join(errs.OutputFormats, ", "))
	f.StringVar(&opts.flags.Engine, "layout", pipeline.DefaultEngine, "graphviz layout engine: "+strings.Join(errs.LayoutEngines, ", "))
	f.StringVar(&opts.flags.Fontname, "fontname", "", "font for the graph, its nodes and edges")
	f.BoolVar(&opts.flags.Dark, "dark", false, "white on black")
	f.BoolVar(&opts.flags.NoNodeLabels, "no-node-labels", false, "omit node and subgraph labels")
	f.BoolVar(&opts.flags.NoEdgeLabels, "no-edge-labels", false, "omit edge labels")
	f.BoolVar(&opts.flags.NoNodeStyles, "no-node-styles", false, "omit node and subgraph styles")
	f.BoolVar(&opts.flags.NoEdgeStyles, "no-edge-styles", false, "omit edge styles")
	f.BoolVar(&opts.flags.NoNodeColors, "no-node-colors", false, "omit node and subgraph colors")
	f.BoolVar(&opts.flags.NoEdgeColors, "no-edge-colors", false, "omit edge colors")
	f.BoolVar(&opts.flags.NoArrows, "no-arrows", false, "omit arrowheads and arrowtails")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(errs.OutputFormats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("layout", cobra.FixedCompletions(errs.LayoutEngines, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("input-format", cobra.FixedCompletions([]string{"json", "toml", "yaml"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// renderOptions merges the flags set on cmd over the config file.
func (c *CLI) renderOptions(cmd *cobra.Command, opts *renderOpts) pipeline.Options {
	o := c.Config.Render.options(c.Config.Cache.TTL.Duration)
	f := cmd.Flags()
	flag := opts.flags

	strs := []struct {
		name string
		dst  *string
		val  string
	}{
		{"format", &o.Format, flag.Format},
		{"layout", &o.Engine, flag.Engine},
		{"fontname", &o.Fontname, flag.Fontname},
	}
	for _, s := range strs {
		if f.Changed(s.name) {
			*s.dst = s.val
		}
	}

	bools := []struct {
		name string
		dst  *bool
		val  bool
	}{
		{"dark", &o.Dark, flag.Dark},
		{"no-node-labels", &o.NoNodeLabels, flag.NoNodeLabels},
		{"no-edge-labels", &o.NoEdgeLabels, flag.NoEdgeLabels},
		{"no-node-styles", &o.NoNodeStyles, flag.NoNodeStyles},
		{"no-edge-styles", &o.NoEdgeStyles, flag.NoEdgeStyles},
		{"no-node-colors", &o.NoNodeColors, flag.NoNodeColors},
		{"no-edge-colors", &o.NoEdgeColors, flag.NoEdgeColors},
		{"no-arrows", &o.NoArrows, flag.NoArrows},
	}
	for _, b := range bools {
		if f.Changed(b.name) {
			*b.dst = b.val
		}
	}

	o.Refresh = opts.refresh
	o.Logger = c.Logger
	return o
}

// planJobs decides where each input is written.
func planJobs(inputs []string, output, format string) ([]renderJob, error) {
	if len(inputs) == 1 {
		in := inputs[0]
		switch {
		case output != "":
			return []renderJob{{input: in, output: output}}, nil
		case format == pipeline.FormatDOT || in == stdio:
			return []renderJob{{input: in, output: stdio}}, nil
		default:
			return []renderJob{{input: in, output: outputPath("", in, format)}}, nil
		}
	}

	if output == stdio {
		return nil, errs.New(errs.ErrCodeInvalidInput, "cannot write %d inputs to standard output", len(inputs))
	}
	jobs := make([]renderJob, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		if in == stdio {
			return nil, errs.New(errs.ErrCodeInvalidInput, "standard input can only be rendered on its own")
		}
		out := outputPath(output, in, format)
		if prev, ok := seen[out]; ok {
			return nil, errs.New(errs.ErrCodeInvalidInput, "%s and %s would both be written to %s", prev, in, out)
		}
		seen[out] = in
		jobs = append(jobs, renderJob{input: in, output: out})
	}
	return jobs, nil
}

// outputPath replaces the extension of input with format, inside dir when
// given, otherwise next to the input.
func outputPath(dir, input, format string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "." + format
	if dir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(dir, name)
}

func (c *CLI) runRender(cmd *cobra.Command, jobs []renderJob, inFormat dotio.Format, opts pipeline.Options, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	for _, job := range jobs {
		if job.output == stdio {
			continue
		}
		if dir := filepath.Dir(job.output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errs.Wrap(errs.ErrCodeIO, err, "create %s", dir)
			}
		}
	}

	var sp *Spinner
	if opts.NeedsLayout() && isTerminal(os.Stderr) {
		sp = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Running graphviz...")
		sp.Start()
	}

	prog := newProgress(logger)
	results := make([]*pipeline.Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			res, err := renderJobWith(gctx, runner, job, inFormat, opts, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	err = g.Wait()
	finishSpinner(sp, len(jobs), err)
	if err != nil {
		return err
	}

	status := cmd.ErrOrStderr()
	hits := 0
	for i, job := range jobs {
		if results[i].CacheHit {
			hits++
		}
		if job.output == stdio {
			continue
		}
		printFile(status, job.output)
		printStats(status, results[i].Stats, results[i].CacheHit)
	}
	prog.done(fmt.Sprintf("Rendered %d %s", len(jobs), plural(len(jobs), "graph")),
		"format", opts.Format, "hits", hits)
	return nil
}

// finishSpinner stops sp, if running, with the outcome of n renders.
func finishSpinner(sp *Spinner, n int, err error) {
	if sp == nil {
		return
	}
	if err != nil {
		sp.StopWithError("Render failed")
		return
	}
	sp.StopWithSuccess(fmt.Sprintf("Laid out %d %s", n, plural(n, "graph")))
}

// renderJobWith reads, renders and writes one job. Errors name the input.
func renderJobWith(ctx context.Context, runner *pipeline.Runner, job renderJob, inFormat dotio.Format,
	opts pipeline.Options, stdin io.Reader, stdout io.Writer) (*pipeline.Result, error) {
	g, err := readInput(job.input, inFormat, stdin)
	if err != nil {
		return nil, err
	}
	res, err := runner.Execute(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(job.input), err)
	}

	if job.output == stdio {
		if _, err := stdout.Write(res.Artifact); err != nil {
			return nil, errs.Wrap(errs.ErrCodeIO, err, "write output")
		}
		return res, nil
	}
	if err := os.WriteFile(job.output, res.Artifact, 0o644); err != nil {
		return nil, errs.Wrap(errs.ErrCodeIO, err, "write %s", job.output)
	}
	return res, nil
}

// readInput decodes a graph document from a file or, for "-", from stdin.
// The format defaults to the file extension, or JSON on stdin.
func readInput(input string, f dotio.Format, stdin io.Reader) (*graph.Graph, error) {
	if input == stdio {
		if f == "" {
			f = dotio.FormatJSON
		}
		g, err := dotio.Read(stdin, f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", displayName(input), err)
		}
		return g, nil
	}
	if f == "" {
		return dotio.Import(input)
	}
	file, err := os.Open(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", input)
		}
		return nil, errs.Wrap(errs.ErrCodeIO, err, "open %s", input)
	}
	defer file.Close()
	g, err := dotio.Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	return g, nil
}

func displayName(input string) string {
	if input == stdio {
		return "<stdin>"
	}
	return input
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
