// Package version reports the chatmark build version.
package version

import (
	"runtime/debug"
	"strings"
	"time"
)

const defaultModule = "github.com/csams/chatmark"

// buildVersion is set with -ldflags "-X github.com/csams/chatmark/internal/version.buildVersion=..."
var buildVersion = ""

// Current returns the best version string available: the linked one, the
// module version, or a pseudo version built from VCS stamps
func Current() string {
	if v := strings.TrimSpace(buildVersion); v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "v0.0.0-unknown"
	}
	if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
		return v
	}
	if v := pseudoVersion(info.Settings); v != "" {
		return v
	}
	return "v0.0.0-unknown"
}

// Module returns the main module path
func Module() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if path := strings.TrimSpace(info.Main.Path); path != "" {
			return path
		}
	}
	return defaultModule
}

func pseudoVersion(settings []debug.BuildSetting) string {
	var revision, vcsTime string
	var modified bool
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if revision == "" || vcsTime == "" {
		return ""
	}
	ts, err := time.Parse(time.RFC3339, vcsTime)
	if err != nil {
		return ""
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	v := "v0.0.0-" + ts.UTC().Format("20060102150405") + "-" + revision
	if modified {
		v += "+dirty"
	}
	return v
}
