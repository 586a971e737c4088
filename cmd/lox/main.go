package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lox/internal/prof"
	"lox/internal/version"
)

var profSession *prof.Session

var rootCmd = &cobra.Command{
	Use:   "lox [flags] [file]",
	Short: "Lox scanner and bytecode virtual machine",
	Long: `lox interprets a script file, or starts a REPL when no file is given.
Each REPL line is compiled and run as its own program.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
	PersistentPostRun: postRun,
	RunE:              runRoot,
}

// main registers subcommands and persistent flags, executes the root command
// and maps the outcome to an exit status: 0 ok, 65 compile error,
// 70 runtime error, 1 anything else.
func main() {
	rootCmd.Version = version.Short()

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.BoolP("debug", "d", false, "trace every VM step and dump tokens and chunks")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	flags.Int("stack-size", 0, "VM operand stack capacity (0 = 150)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpuprofile", "", "write CPU profile to file")
	flags.String("memprofile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime trace to file")

	err := rootCmd.Execute()
	postRun(rootCmd, nil)
	if err != nil {
		var ee *exitError
		if !errors.As(err, &ee) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(exitCodeFor(err))
	}
}

func preRun(cmd *cobra.Command, _ []string) error {
	applyColorMode(cmd)
	if err := loadManifestOnce(); err != nil {
		return err
	}
	if err := startProfiling(cmd); err != nil {
		return err
	}
	return setupTracing(cmd)
}

func postRun(*cobra.Command, []string) {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if profSession != nil {
		if err := profSession.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		profSession = nil
	}
}

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var opts prof.Options
	opts.CPUProfile, _ = flags.GetString("cpuprofile")
	opts.MemProfile, _ = flags.GetString("memprofile")
	opts.RuntimeTrace, _ = flags.GetString("runtime-trace")
	if !opts.Enabled() {
		return nil
	}
	s, err := prof.Start(opts)
	if err != nil {
		return err
	}
	profSession = s
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
