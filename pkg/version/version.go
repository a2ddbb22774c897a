// Package version exposes the build metadata stamped into rove binaries.
package version

import (
	"fmt"
	"runtime"
)

// These are overridden at build time via -ldflags; see the Makefile:
//
//	-X github.com/rovenotes/rove/pkg/version.Version=$(VERSION)
var (
	// Version is the release tag, or "dev" for untagged builds.
	Version = "dev"

	// Commit is the abbreviated git revision.
	Commit = "unknown"

	// Date is the UTC build timestamp in RFC3339 form.
	Date = "unknown"
)

// GoVersion is the toolchain the binary was compiled with.
var GoVersion = runtime.Version()

// BuildInfo carries the full build description for JSON output.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// String renders the one-line human form.
func String() string {
	return fmt.Sprintf("rove %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}

// Short returns the bare version.
func Short() string {
	return Version
}

// GetInfo assembles the structured form, including the target platform.
func GetInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
