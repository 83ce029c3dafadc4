// Package buildinfo carries the build identity stamped in by -ldflags.
package buildinfo

import "fmt"

// Set at build time, e.g.
//
//	-ldflags "-X nile/internal/buildinfo.Version=v0.3.0 -X nile/internal/buildinfo.Commit=abc123"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the release version when one was stamped, else the commit,
// else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Describe returns a one-line key=value form for startup logs.
func Describe() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", Version, Commit, Date)
}
