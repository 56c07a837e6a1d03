package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"covannot/internal/prof"
	"covannot/internal/version"
)

// newRootCmd builds the command tree. finish releases the tracer and the
// profilers; cobra skips post-run hooks when a command fails, so callers run
// it after Execute unconditionally.
func newRootCmd() (root *cobra.Command, finish func()) {
	var cleanups []func()
	finish = func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		cleanups = nil
	}

	root = &cobra.Command{
		Use:           "covannot",
		Short:         "Turn Istanbul coverage maps into code annotations",
		Long:          `covannot reads Istanbul/nyc/Jest coverage maps and reports every uncovered statement, branch and function as an annotation`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			stopProf, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopProf)
			stopTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopTrace)
			return nil
		},
	}

	root.AddCommand(newAnnotateCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-annotations", 0, "maximum number of annotations to print (0=all)")
	root.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|stage|detail|debug)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go execution trace to file")

	return root, finish
}

// main executes the root command and exits with status 1 on any error.
func main() {
	root, finish := newRootCmd()
	err := root.Execute()
	finish()
	if err != nil {
		fmt.Fprintf(os.Stderr, "covannot: %v\n", err)
		os.Exit(1)
	}
}

// setupProfiling starts the profilers requested by the debug flags.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPUPath, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.MemPath, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.TracePath, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
