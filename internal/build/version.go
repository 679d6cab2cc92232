package build

import "fmt"

// Stamped at link time:
//
//	-ldflags "-X github.com/rohmanhakim/robots-directives/internal/build.Version=1.2.0 ..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version with the commit as build metadata,
// e.g. "1.0.0+abc123". An unstamped commit is left out.
func FullVersion() string {
	if Commit == "" || Commit == "none" {
		return Version
	}
	return Version + "+" + Commit
}

// Summary is the line printed by the version command.
func Summary(program string) string {
	return fmt.Sprintf("%s %s (built %s)", program, FullVersion(), BuildTime)
}
