// Package buildinfo reports which nodetraversal build is running.
//
// Release builds stamp the values through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/nodetraversal/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/nodetraversal/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/nodetraversal/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with "go install module@version" carry no ldflags, so any
// value left unstamped falls back to the module version and VCS settings the
// Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Values stamped at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build identity.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get returns the stamped values, filling unstamped ones from the embedded
// build information when it is available.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	vcs := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		vcs[s.Key] = s.Value
	}
	if rev := vcs["vcs.revision"]; rev != "" && info.Commit == "none" {
		info.Commit = rev
		if vcs["vcs.modified"] == "true" {
			info.Commit += "-dirty"
		}
	}
	if t := vcs["vcs.time"]; t != "" && info.Date == "unknown" {
		info.Date = t
	}
	return info
}

// String returns the build information as three lines.
func String() string {
	i := Get()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the cobra version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Date)
}
