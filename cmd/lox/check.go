package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lox/internal/diag"
	"lox/internal/diagfmt"
	"lox/internal/driver"
	"lox/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.lox|dir>...",
	Short: "Compile many scripts in parallel and report diagnostics",
	Long: `Check compiles every given script (directories contribute all *.lox files)
without running them. Output keeps the order of the sorted input list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntP("jobs", "j", 0, "parallel compilations (0 = GOMAXPROCS)")
	checkCmd.Flags().String("ui", "off", "progress view (auto|on|off)")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	files, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}
	opts := driver.CheckOptions{Jobs: jobs, MaxDiagnostics: maxDiagnostics}

	var (
		fs      *source.FileSet
		results []driver.CheckResult
	)
	if shouldUseTUI(mode) {
		fs, results, err = runCheckWithUI(cmd.Context(), "checking", files, opts)
	} else {
		fs, results, err = driver.Check(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	failed, errorCount := reportCheck(cmd, format, fs, results)
	if format != "json" {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d files: %d failed, %d errors\n", len(results), failed, errorCount)
	}
	if failed > 0 {
		return &exitError{code: exitCompileError, err: fmt.Errorf("%d of %d files failed", failed, len(results))}
	}
	return nil
}

func reportCheck(cmd *cobra.Command, format string, fs *source.FileSet, results []driver.CheckResult) (failed, errorCount int) {
	merged := diag.NewBag(1)
	for _, r := range results {
		if r.Failed() {
			failed++
		}
		if r.Bag == nil {
			continue
		}
		errorCount += r.Bag.Len()
		merged.Merge(r.Bag)
	}

	switch format {
	case "json":
		_ = diagfmt.JSON(cmd.OutOrStdout(), merged, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	case "short":
		if text := diag.FormatGoldenDiagnostics(merged.Items(), fs, false); text != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), text)
		}
		// без файла golden-формат ничего не выводит
		for _, d := range merged.Items() {
			if fs.Get(d.Primary.File) == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), d.Severity.Label()+" "+d.Error())
			}
		}
	default:
		diagfmt.Pretty(cmd.ErrOrStderr(), merged, fs, prettyOpts(cmd))
	}
	return failed, errorCount
}

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.CheckResult
	err     error
}
