package version

import (
	"fmt"

	"github.com/fatih/color"
)

// Build metadata for the lox CLI. Overridden at build time via -ldflags:
//
//	go build -ldflags "-X lox/internal/version.GitCommit=$(git rev-parse HEAD)" ./cmd/lox
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component highlighted.
// Versions that are not MAJOR.MINOR.PATCH[-suffix] are returned as is.
func Colored() string {
	var major, minor, patch int
	var rest string
	n, err := fmt.Sscanf(Version, "%d.%d.%d%s", &major, &minor, &patch, &rest)
	if err != nil && n < 3 {
		return Version
	}
	return majorColor.Sprint(major) + "." + minorColor.Sprint(minor) + "." + patchColor.Sprint(patch) + rest
}

// Short returns the version plus an abbreviated commit, if known.
func Short() string {
	if GitCommit == "" {
		return Version
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Version + " (" + commit + ")"
}
