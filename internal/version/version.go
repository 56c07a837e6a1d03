package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the covannot CLI.
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
)

// Colored paints the major, minor and patch components of v. Anything after
// the patch number (pre-release, build metadata) is left as is. Strings that
// are not dotted triples are returned unchanged.
func Colored(v string, enabled bool) string {
	parts := strings.SplitN(v, ".", 3)
	if !enabled || len(parts) != 3 {
		return v
	}
	patch, rest := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, rest = patch[:i], patch[i:]
	}
	for _, c := range []*color.Color{majorColor, minorColor, patchColor} {
		c.EnableColor()
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(patch) + rest
}
