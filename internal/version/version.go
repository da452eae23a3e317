package version

import "fmt"

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/markypond/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	if GitCommit == "unknown" {
		return fmt.Sprintf("markypond %s", Version)
	}
	return fmt.Sprintf("markypond %s (%s, built %s)", Version, GitCommit, BuildTime)
}
