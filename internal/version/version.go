package version

import (
	"fmt"
	"runtime"
)

// Set by ldflags at release build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the full version line shown by 'apeer version'.
func String() string {
	commit := Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("apeer %s (%s) built %s with %s for %s/%s",
		Version, commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
