// Package version reports build information.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Version, CommitSHA, and BuildDate are set via ldflags at build time.
// Example: go build -ldflags "-X .../version.Version=0.2.0 -X .../version.CommitSHA=abc1234 -X .../version.BuildDate=2026-10-01"
var (
	Version   = "0.1.0"
	CommitSHA = "dev"
	BuildDate = "unknown"
)

// BuildInfo is the machine-readable form printed by `version --json`.
type BuildInfo struct {
	Version   string `json:"version"`
	CommitSHA string `json:"commit_sha"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current build information.
func Get() BuildInfo {
	return BuildInfo{
		Version:   strings.TrimPrefix(Version, "v"),
		CommitSHA: CommitSHA,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info returns a human-readable version string.
// For dev builds: "0.1.0"
// For release builds: "0.1.0 (abc1234, 2026-10-01)"
func Info() string {
	v := strings.TrimPrefix(Version, "v")
	if CommitSHA == "dev" || CommitSHA == "" {
		return v
	}
	return fmt.Sprintf("%s (%s, %s)", v, CommitSHA, BuildDate)
}

// UserAgent identifies the tool to the Figma API.
func UserAgent() string {
	return "figma-to-react/" + strings.TrimPrefix(Version, "v")
}
