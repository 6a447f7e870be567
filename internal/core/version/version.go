// Package version reports what build of the service is running
package version

import "runtime/debug"

// BuildInfo is what /meta/version returns
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Set with -ldflags "-X 'meetgrid/internal/core/version.version=v0.1.0' -X ...commit=abcd -X ...date=2025-09-02"
var (
	service = "meetgrid-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build info, falling back to the toolchain's vcs stamp when ldflags were not set
func Info() BuildInfo {
	out := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = s.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = s.Value
			}
		}
	}
	return out
}

// Service is the service name used in logs and meta responses
func Service() string { return service }
