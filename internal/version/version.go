package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata, overridable at build time via -ldflags.
var (
	// Semver is the semantic version of the CLI.
	Semver = "0.1.0-dev"

	// Commit is an optional git commit hash.
	Commit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var componentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Semver with each dotted component tinted for terminal
// output; any pre-release or build suffix is left unstyled.
func Colored() string {
	core, suffix := Semver, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.Split(core, ".")
	for i, p := range parts {
		parts[i] = componentColors[i%len(componentColors)].Sprint(p)
	}
	return strings.Join(parts, ".") + suffix
}
