package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lox/internal/driver"
	"lox/internal/observ"
	"lox/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] file.lox",
	Short: "Compile a script into a chunk image",
	Long:  `Build compiles a script and writes a msgpack chunk image that "lox run" executes directly`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "image path (default: <file>.loxc)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	var timer *observ.Timer
	if timingsEnabled(cmd) {
		timer = observ.NewTimer()
	}

	res, err := driver.Build(cmd.Context(), args[0], out, driver.CompileOptions{
		MaxDiagnostics: maxDiagnostics,
		Timer:          timer,
	})
	printTimings(cmd, timer)
	if err != nil {
		var fs *source.FileSet
		if res != nil {
			fs = res.FileSet
		}
		return renderError(cmd, fs, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "built %s (%d slots, %d constants)\n", res.Output, res.Chunk.Len(), len(res.Chunk.Constants))
	return nil
}
