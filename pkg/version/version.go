// Package version provides build information for the codeprompt CLI.
package version

import (
	"fmt"
	"runtime"
)

// Populated at build time with -ldflags, e.g.
// go build -ldflags "-X 'codeprompt/pkg/version.Version=0.3.0' -X 'codeprompt/pkg/version.Commit=abc1234'"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// AppName is attached to every log line and printed by the version command.
const AppName = "codeprompt"

// Info describes the running binary.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String formats the info on one line:
// codeprompt version 0.3.0 (commit: abc1234) built at 2024-04-27T15:04:05Z with go1.24.1 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf(
		"%s version %s (commit: %s) built at %s with %s on %s",
		AppName,
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
