package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"covannot/internal/trace"
)

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}

	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает stage-трассировку
	if level == trace.LevelOff && traceOutput != "" && !cmd.Flags().Changed("trace-level") {
		level = trace.LevelStage
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return func() {}, nil
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	cfg := trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: traceOutput,
	}
	if traceOutput == "" || traceOutput == "-" {
		cfg.Output = cmd.ErrOrStderr()
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx = trace.WithTracer(ctx, tracer)
	cmd.SetContext(ctx)

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}

	return cleanup, nil
}
