// Package version exposes the build metadata stamped into release
// binaries. Release builds overwrite the variables through ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/cratebuilder/internal/version.Version=v0.3.0"
//
// Unstamped builds (go run, tests) report the development defaults.
package version

// Kept as plain vars so -X can reach them.
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

// Commit returns the stamped VCS commit and whether one was stamped.
func Commit() (string, bool) {
	return GitCommit, GitCommit != ""
}

// Built returns the stamped build timestamp and whether one was stamped.
func Built() (string, bool) {
	return BuildTime, BuildTime != ""
}
