package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/droidgen/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/droidgen/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/droidgen/internal/version.Date={{.Date}}
)

// String is the multi-line version report printed by the version command
func String() string {
	return fmt.Sprintf("droidgen version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
