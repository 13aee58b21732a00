// Package version reports the build of the recast binary.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// These variables can be overridden at build time via -ldflags.
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
	labelColor = color.New(color.Faint)
)

// Colored renders Version with each numeric component in its own colour.
// Colour follows color.NoColor.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Summary is the multi-line text of `recast version`.
func Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "recast %s\n", Colored())
	if GitCommit != "" {
		fmt.Fprintf(&b, "%s %s\n", labelColor.Sprint("commit:"), GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "%s %s\n", labelColor.Sprint("built: "), BuildDate)
	}
	fmt.Fprintf(&b, "%s %s %s/%s\n", labelColor.Sprint("go:    "), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return b.String()
}
