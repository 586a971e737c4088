package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lox/internal/diagfmt"
	"lox/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lox",
	Short: "Dump the token stream of a script",
	Long:  `Tokenize scans a script to EOF and prints every token with its position`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return renderError(cmd, nil, err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() {
		printDiagnostics(cmd, result.Bag, result.FileSet)
		return &exitError{code: exitCompileError, err: fmt.Errorf("%d lexical errors", result.Bag.Len())}
	}
	return nil
}
