// Package misc holds program metadata set at build time.
package misc

import "runtime/debug"

// Set with -ldflags "-X sketchgen/misc.version=... -X sketchgen/misc.gitHash=...".
var (
	version = "dev"
	gitHash = ""
)

const appName = "sketchgen"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns the commit the binary was built from, falling back to
// VCS information recorded by the toolchain.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
