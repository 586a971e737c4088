package main

import (
	"github.com/spf13/cobra"

	"lox/internal/driver"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm file.lox|file.loxc",
	Short: "Compile a script and print its bytecode listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
		if err != nil {
			return err
		}
		res, err := driver.Disassemble(cmd.Context(), cmd.OutOrStdout(), args[0], driver.CompileOptions{
			MaxDiagnostics: maxDiagnostics,
		})
		if err != nil {
			if res != nil {
				return renderError(cmd, res.FileSet, err)
			}
			return renderError(cmd, nil, err)
		}
		return nil
	},
}
