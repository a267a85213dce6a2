// Package version reports build metadata stamped in with -ldflags
//
//	-X aidetector/internal/core/version.version=v1.2.0
//	-X aidetector/internal/core/version.commit=abc1234
//	-X aidetector/internal/core/version.date=2026-01-31
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo is what the meta endpoint and the scan CLI print
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

// Info returns the stamped values; an unstamped commit falls back to the
// VCS revision the toolchain embedded, if any
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  Commit(),
		Date:    date,
		Go:      runtime.Version(),
	}
}

// Commit is the short revision, "unknown" when neither source has one
func Commit() string {
	if commit != "" {
		return commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}
