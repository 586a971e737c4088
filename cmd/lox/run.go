package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lox/internal/driver"
	"lox/internal/observ"
	"lox/internal/repl"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.lox|file.loxc]",
	Short: "Interpret a script or a compiled chunk image",
	Long: `Run interprets a single script. Without a file it runs [run].main from lox.toml.
Chunk images produced by "lox build" are executed without recompiling.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExecution,
}

func init() {
	runCmd.Flags().Bool("cache", false, "reuse compiled chunks from the on-disk cache")
	runCmd.Flags().Bool("clear-cache", false, "drop the chunk cache before running")
}

// runRoot keeps the classic contract: a file runs once, no file starts a REPL.
func runRoot(cmd *cobra.Command, args []string) error {
	opts, err := sessionOptions(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if opts.Debug {
			fmt.Fprintf(cmd.OutOrStdout(), "running on file %q\n", args[0])
		}
		return executeFile(cmd, opts, args[0])
	}

	if opts.Debug {
		fmt.Fprintln(cmd.OutOrStdout(), "starting as repl!")
	}
	sess := driver.NewSession(opts)
	err = repl.Run(cmd.Context(), sess, repl.Options{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		OnError: func(err error) {
			_ = renderError(cmd, sess.FileSet(), err)
		},
	})
	printTimings(cmd, opts.Timer)
	return err
}

func runExecution(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		target, err := resolveMainTarget(manifest)
		if err != nil {
			return err
		}
		path = target
	}

	opts, err := sessionOptions(cmd)
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if useCache || clearCache {
		cache, err := driver.OpenChunkCache("lox")
		if err != nil {
			return fmt.Errorf("failed to open chunk cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear chunk cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	if opts.Debug {
		fmt.Fprintf(cmd.OutOrStdout(), "running on file %q\n", path)
	}
	return executeFile(cmd, opts, path)
}

func executeFile(cmd *cobra.Command, opts driver.Options, path string) error {
	sess := driver.NewSession(opts)
	res, err := sess.RunFile(cmd.Context(), path)
	if res != nil {
		printDiagnostics(cmd, res.Warnings, sess.FileSet())
	}
	printTimings(cmd, opts.Timer)
	if err != nil {
		return renderError(cmd, sess.FileSet(), err)
	}
	return nil
}

// sessionOptions merges flags with [run] of lox.toml; explicit flags win.
func sessionOptions(cmd *cobra.Command) (driver.Options, error) {
	flags := cmd.Flags()
	debug, err := flags.GetBool("debug")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get debug flag: %w", err)
	}
	stackSize, err := flags.GetInt("stack-size")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get stack-size flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if manifest != nil {
		if !flags.Changed("debug") {
			debug = manifest.Config.Run.Debug
		}
		if !flags.Changed("stack-size") && manifest.Config.Run.StackSize > 0 {
			stackSize = manifest.Config.Run.StackSize
		}
	}
	if stackSize < 0 {
		return driver.Options{}, fmt.Errorf("--stack-size must not be negative")
	}

	opts := driver.Options{
		Debug:          debug,
		StackCapacity:  stackSize,
		MaxDiagnostics: maxDiagnostics,
		Out:            cmd.OutOrStdout(),
	}
	if timingsEnabled(cmd) {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

func timingsEnabled(cmd *cobra.Command) bool {
	on, err := cmd.Flags().GetBool("timings")
	return err == nil && on
}

func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
