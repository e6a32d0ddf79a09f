// Package build holds values stamped in at link time.
package build

import "fmt"

// Version, Commit and Date default to development values and are set with
// -ldflags "-X go.trai.ch/shadercell/internal/build.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the version line printed by the version command.
func String() string {
	return fmt.Sprintf("shadercell version %s (commit: %s, date: %s)", Version, Commit, Date)
}
