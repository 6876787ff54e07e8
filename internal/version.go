package internal

import (
	"fmt"
	"runtime"
)

// go build -ldflags "-X 'github.com/ZanzyTHEbar/atm-go/internal.BuildTime=$(date -u)' -X 'github.com/ZanzyTHEbar/atm-go/internal.GitCommit=$(git rev-parse --short HEAD)'" ./cmd/atm

var (
	Version = "v0.1.0"

	// dev or release
	BuildType = "dev"

	BuildTime string

	GitCommit = "unknown"
)

// VersionInfo returns a formatted string with version information
func VersionInfo() string {
	buildTime := BuildTime
	if buildTime == "" {
		buildTime = "unknown"
	}
	return fmt.Sprintf(
		"Version: %s (%s)\nBuild Date: %s\nGit Commit: %s\nGo Version: %s\nOS/Arch: %s/%s",
		Version,
		BuildType,
		buildTime,
		GitCommit,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}
