package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"covannot/internal/annotate"
	"covannot/internal/annotfmt"
	"covannot/internal/coverage"
	"covannot/internal/i18n"
	"covannot/internal/observ"
	"covannot/internal/trace"
)

// errAnnotationsFound is returned under --fail-on-annotations.
var errAnnotationsFound = errors.New("uncovered code found")

func newAnnotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate [flags] <report.json>...",
		Short: "Report uncovered code from Istanbul coverage maps",
		Long: `Read one or more coverage-final.json files (or Jest --json reports) and print an
annotation for every uncovered statement, branch and function. Use - to read stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnnotate,
	}

	cmd.Flags().String("format", "pretty", "output format (pretty|json|github|short|msgpack)")
	cmd.Flags().StringP("output", "o", "", "write annotations to file instead of stdout")
	cmd.Flags().String("locale", "", "message locale (default: config, then LC_ALL/LC_MESSAGES/LANG)")
	cmd.Flags().String("cwd", "", "base directory for annotation paths (default: working directory)")
	cmd.Flags().String("config", "", "path to "+configFileName+" (default: search upward)")
	cmd.Flags().Int("jobs", 0, "max parallel report loads (0=auto)")
	cmd.Flags().Bool("fail-on-annotations", false, "exit with an error when any annotation is produced")
	return cmd
}

type annotateOptions struct {
	format            annotfmt.Format
	output            string
	locale            string
	workDir           string
	jobs              int
	maxAnnotations    int
	failOnAnnotations bool
	color             colorMode
	quiet             bool
	timings           bool
	config            *projectConfig
}

// readAnnotateOptions merges flags with covannot.toml. Flags the user set
// explicitly win over config values, config wins over flag defaults.
func readAnnotateOptions(cmd *cobra.Command) (annotateOptions, error) {
	var opts annotateOptions
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	formatStr, err := flags.GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if opts.output, err = flags.GetString("output"); err != nil {
		return opts, fmt.Errorf("failed to get output flag: %w", err)
	}
	if opts.locale, err = flags.GetString("locale"); err != nil {
		return opts, fmt.Errorf("failed to get locale flag: %w", err)
	}
	if opts.workDir, err = flags.GetString("cwd"); err != nil {
		return opts, fmt.Errorf("failed to get cwd flag: %w", err)
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return opts, fmt.Errorf("failed to get config flag: %w", err)
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.failOnAnnotations, err = flags.GetBool("fail-on-annotations"); err != nil {
		return opts, fmt.Errorf("failed to get fail-on-annotations flag: %w", err)
	}
	if opts.maxAnnotations, err = root.GetInt("max-annotations"); err != nil {
		return opts, fmt.Errorf("failed to get max-annotations flag: %w", err)
	}
	colorStr, err := root.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	if opts.quiet, err = root.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = root.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}

	if opts.color, err = readColorMode(colorStr); err != nil {
		return opts, err
	}
	if opts.jobs < 0 {
		return opts, fmt.Errorf("invalid --jobs value %d", opts.jobs)
	}
	if opts.maxAnnotations < 0 {
		return opts, fmt.Errorf("invalid --max-annotations value %d", opts.maxAnnotations)
	}

	if opts.workDir == "" {
		if opts.workDir, err = os.Getwd(); err != nil {
			return opts, fmt.Errorf("failed to get working directory: %w", err)
		}
	} else if opts.workDir, err = filepath.Abs(opts.workDir); err != nil {
		return opts, fmt.Errorf("failed to resolve --cwd: %w", err)
	}

	if opts.config, err = resolveConfig(configPath, opts.workDir); err != nil {
		return opts, err
	}
	cfg := opts.config
	if !flags.Changed("format") && cfg.has("format") {
		formatStr = cfg.Annotate.Format
	}
	if !flags.Changed("locale") && cfg.has("locale") {
		opts.locale = cfg.Annotate.Locale
	}
	if !flags.Changed("max-annotations") && cfg.has("max_annotations") {
		opts.maxAnnotations = cfg.Annotate.MaxAnnotations
	}
	if opts.locale == "" {
		opts.locale = i18n.LocaleFromEnv(os.Getenv)
	}

	if opts.format, err = annotfmt.ParseFormat(formatStr); err != nil {
		if cfg != nil && !flags.Changed("format") {
			return opts, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return opts, err
	}
	return opts, nil
}

// runAnnotate loads every report, turns the pooled coverage into
// annotations and prints them. With --fail-on-annotations it returns
// errAnnotationsFound after printing when anything is uncovered.
func runAnnotate(cmd *cobra.Command, args []string) error {
	opts, err := readAnnotateOptions(cmd)
	if err != nil {
		return err
	}

	ctx, cmdSpan := trace.Start(cmd.Context(), trace.ScopeCommand, "annotate")
	defer cmdSpan.End("")
	timer := observ.NewTimer()

	catalog, err := newCatalog(opts)
	if err != nil {
		return err
	}

	idx := timer.Begin("load")
	stageCtx, span := trace.Start(ctx, trace.ScopeStage, "load")
	maps, err := loadReports(stageCtx, args, cmd.InOrStdin(), opts.jobs)
	span.WithExtra("reports", strconv.Itoa(len(args))).End("")
	timer.End(idx, len(args))
	if err != nil {
		return err
	}

	idx = timer.Begin("annotate")
	_, span = trace.Start(ctx, trace.ScopeStage, "annotate")
	anns, err := annotate.Create(annotate.Options{WorkDir: opts.workDir, Catalog: catalog}, maps...)
	span.WithExtra("annotations", strconv.Itoa(len(anns))).WithExtra("locale", catalog.Tag().String()).End("")
	timer.End(idx, len(anns))
	if err != nil {
		return err
	}

	idx = timer.Begin("emit")
	_, span = trace.Start(ctx, trace.ScopeStage, "emit")
	err = writeAnnotations(cmd, opts, anns)
	span.WithExtra("format", opts.format.String()).End("")
	timer.End(idx, len(anns))
	if err != nil {
		return err
	}

	if opts.output != "" && opts.output != "-" && !opts.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d annotations to %s\n", len(anns), opts.output)
	}
	if opts.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if opts.failOnAnnotations && len(anns) > 0 {
		return fmt.Errorf("%w: %d annotations", errAnnotationsFound, len(anns))
	}
	return nil
}

// newCatalog builds the message catalog with the overrides of the config
// file, naming that file when an override is rejected.
func newCatalog(opts annotateOptions) (*i18n.Catalog, error) {
	if opts.config == nil {
		return i18n.New(opts.locale, nil)
	}
	catalog, err := i18n.New(opts.locale, opts.config.Messages)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.config.Path, err)
	}
	return catalog, nil
}

// loadReports decodes the reports concurrently. The result keeps the order
// of paths so the pooled output does not depend on scheduling.
func loadReports(ctx context.Context, paths []string, stdin io.Reader, jobs int) ([]coverage.Map, error) {
	stdinUses := 0
	for _, p := range paths {
		if p == "-" {
			stdinUses++
		}
	}
	if stdinUses > 1 {
		return nil, fmt.Errorf("stdin (-) can be read only once")
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maps := make([]coverage.Map, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, span := trace.Start(gctx, trace.ScopeReport, "report:"+p)
			m, err := loadReport(p, stdin)
			if err != nil {
				trace.Error(trace.FromContext(gctx), trace.ScopeReport, "load", err, span.ID())
				span.End("failed")
				return err
			}
			tr := trace.FromContext(gctx)
			for _, name := range m.Paths() {
				trace.Point(tr, trace.ScopeFile, name, "", span.ID())
			}
			span.WithExtra("files", strconv.Itoa(len(m))).End("")
			maps[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return maps, nil
}

func loadReport(path string, stdin io.Reader) (coverage.Map, error) {
	if path == "-" {
		m, err := coverage.Decode(stdin)
		if err != nil {
			return nil, fmt.Errorf("<stdin>: %w", err)
		}
		return m, nil
	}
	return coverage.LoadFile(path)
}

func writeAnnotations(cmd *cobra.Command, opts annotateOptions, anns []annotate.Annotation) (err error) {
	var out io.Writer = cmd.OutOrStdout()
	if opts.output != "" && opts.output != "-" {
		f, createErr := os.Create(opts.output)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		out = f
	}

	fmtOpts := annotfmt.Opts{
		Color: shouldColor(opts.color, out),
		Max:   opts.maxAnnotations,
	}
	if err := annotfmt.Write(out, opts.format, anns, fmtOpts); err != nil {
		return fmt.Errorf("failed to write annotations: %w", err)
	}
	return nil
}
