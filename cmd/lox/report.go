package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lox/internal/diag"
	"lox/internal/diagfmt"
	"lox/internal/driver"
	"lox/internal/source"
	"lox/internal/vm"
)

const (
	exitOK           = 0
	exitFailure      = 1
	exitCompileError = 65
	exitRuntimeError = 70
)

// exitError carries an exit status for an error that was already printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var ce *vm.CompileError
	if errors.As(err, &ce) {
		return exitCompileError
	}
	var re *vm.RuntimeError
	if errors.As(err, &re) {
		return exitRuntimeError
	}
	return exitFailure
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return strings.ToLower(mode)
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	switch colorMode(cmd) {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(f)
	}
}

func applyColorMode(cmd *cobra.Command) {
	color.NoColor = !useColor(cmd, os.Stdout)
}

func prettyOpts(cmd *cobra.Command) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	}
}

// printDiagnostics renders bag on stderr; empty bags print nothing.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, prettyOpts(cmd))
}

// renderError prints err the way its kind deserves and wraps it with an exit status.
func renderError(cmd *cobra.Command, fs *source.FileSet, err error) error {
	if err == nil {
		return nil
	}
	w := cmd.ErrOrStderr()

	var (
		ce *vm.CompileError
		re *vm.RuntimeError
		le *driver.LoadError
	)
	switch {
	case errors.As(err, &ce):
		printDiagnostics(cmd, ce.Bag, fs)
	case errors.As(err, &re):
		writeRuntimeError(w, re, useColor(cmd, os.Stderr))
	case errors.As(err, &le):
		bag := diag.NewBag(1)
		bag.Add(le.Diagnostic())
		printDiagnostics(cmd, bag, fs)
	default:
		fmt.Fprintf(w, "error: %v\n", err)
	}
	return &exitError{code: exitCodeFor(err), err: err}
}

func writeRuntimeError(w io.Writer, re *vm.RuntimeError, colored bool) {
	c := color.New(color.FgRed, color.Bold)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	text := re.Format()
	head, rest, _ := strings.Cut(text, "\n")
	fmt.Fprintln(w, c.Sprint(head))
	if rest != "" {
		fmt.Fprint(w, rest)
	}
}
