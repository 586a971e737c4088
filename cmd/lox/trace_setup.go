package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lox/internal/trace"
)

var traceCleanup func()

// traceSettings merges --trace* flags with the [trace] table of lox.toml.
// Flags set on the command line win.
func traceSettings(cmd *cobra.Command, m *projectManifest) (output, level, format string, err error) {
	flags := cmd.Flags()
	if output, err = flags.GetString("trace"); err != nil {
		return "", "", "", fmt.Errorf("failed to get trace flag: %w", err)
	}
	if level, err = flags.GetString("trace-level"); err != nil {
		return "", "", "", fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	if format, err = flags.GetString("trace-format"); err != nil {
		return "", "", "", fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	if m == nil {
		return output, level, format, nil
	}
	cfg := m.Config.Trace
	if !flags.Changed("trace") && cfg.Output != "" {
		output = cfg.Output
	}
	if !flags.Changed("trace-level") && cfg.Level != "" {
		level = cfg.Level
	}
	if !flags.Changed("trace-format") && cfg.Format != "" {
		format = cfg.Format
	}
	return output, level, format, nil
}

// setupTracing attaches a tracer to the command context and opens a
// driver-scope span named after the command.
func setupTracing(cmd *cobra.Command) error {
	output, levelStr, formatStr, err := traceSettings(cmd, manifest)
	if err != nil {
		return err
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && output != "" && !cmd.Flags().Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		traceCleanup = func() {}
		return nil
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: output,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	span := trace.Begin(tracer, trace.ScopeDriver, cmd.Name(), 0)
	ctx := trace.WithTracer(cmd.Context(), tracer)
	ctx = trace.ContextWithSpan(ctx, span)
	cmd.SetContext(ctx)

	traceCleanup = func() {
		span.End("")
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return nil
}
