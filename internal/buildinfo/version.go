// Package buildinfo contains build-time information embedded via ldflags
package buildinfo

import "runtime/debug"

// Version is the application version, set at build time via ldflags
// Example: go build -ldflags "-X github.com/YoshitsuguKoike/potionlab/internal/buildinfo.Version=v1.0.0"
var Version = "dev"

// Commit is the VCS revision, set at build time or read from the binary
var Commit = ""

// GetVersion returns the current version, with "dev" as default for development builds
func GetVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// GetCommit returns the VCS revision, or "unknown"
func GetCommit() string {
	if Commit != "" {
		return Commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}
