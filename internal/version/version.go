// Package version reports which build of the website is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// Service names this binary in /version responses and traces.
const Service = "screenify-website"

// Set with -ldflags "-X github.com/prajwalgurnule/Screenify/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Build describes the running binary.
type Build struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Modified  bool   `json:"modified,omitempty"`
}

// Info combines the ldflags values with the VCS stamp the Go toolchain
// embeds, so plain `go build` binaries still report their commit.
func Info() Build {
	return fromBuildInfo(debug.ReadBuildInfo())
}

func fromBuildInfo(bi *debug.BuildInfo, ok bool) Build {
	b := Build{
		Service:   Service,
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildTime,
		GoVersion: "unknown",
	}
	if !ok || bi == nil {
		if b.Commit == "" {
			b.Commit = "unknown"
		}
		return b
	}

	b.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = shortCommit(s.Value)
			}
		case "vcs.time":
			if b.BuildTime == "" {
				b.BuildTime = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	if b.Commit == "" {
		b.Commit = "unknown"
	}
	return b
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String renders the build for log lines, e.g. "screenify-website dev (3f2c1a9b0d4e)".
func (b Build) String() string {
	s := fmt.Sprintf("%s %s (%s)", b.Service, b.Version, b.Commit)
	if b.Modified {
		s += " dirty"
	}
	return s
}
