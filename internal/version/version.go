// Package version carries the build fingerprint stamped into the mica
// binary via -ldflags.
package version

import "github.com/fatih/color"

var (
	// Version is the semantic version reported by the CLI.
	Version = colorize("0", "1", "0") + "-dev"

	// GitCommit is the commit hash the binary was built from, when stamped.
	GitCommit = ""

	// BuildDate is the ISO-8601 build timestamp, when stamped.
	BuildDate = ""
)

// colorize renders the major.minor.patch triple one color per segment.
func colorize(major, minor, patch string) string {
	return color.New(color.FgYellow, color.Bold).Sprint(major) + "." +
		color.New(color.FgGreen, color.Bold).Sprint(minor) + "." +
		color.New(color.FgBlue, color.Bold).Sprint(patch)
}
