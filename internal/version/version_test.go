package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" || GitCommit == "" {
		t.Error("build info should be initialized")
	}
}

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })

	Version, GitCommit = "v1.2.3", "unknown"
	if got := String(); got != "markypond v1.2.3" {
		t.Errorf("String() = %q", got)
	}

	GitCommit, BuildTime = "abc123", "2026-01-01"
	if got := String(); !strings.Contains(got, "abc123") || !strings.Contains(got, "2026-01-01") {
		t.Errorf("String() = %q", got)
	}
}
