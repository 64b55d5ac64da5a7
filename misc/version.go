// Package misc keeps build time information.
package misc

import (
	"runtime/debug"
	"sync"
)

// Set with -ldflags "-X styl2scss/misc.version=... -X styl2scss/misc.gitHash=..."
var (
	appName = "styl2scss"
	version = "dev"
	gitHash = ""
)

var buildInfo = sync.OnceValue(func() *debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return bi
})

func GetAppName() string {
	return appName
}

// GetVersion returns linked version, falling back to module version recorded
// by the toolchain.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if bi := buildInfo(); bi != nil && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi := buildInfo(); bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
