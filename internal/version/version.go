// Package version holds build identification, populated at link time via
// -ldflags (e.g. -X .../internal/version.Version=1.2.0).
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a single-line description of the build.
func String() string {
	return fmt.Sprintf("nav.report %s (%s, built %s)", Version, GitSHA, BuildTime)
}
