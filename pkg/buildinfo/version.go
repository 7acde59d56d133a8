// Package buildinfo exposes version information injected at build time:
//
//	go build -ldflags "-X github.com/neunenak/typst/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/neunenak/typst/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/neunenak/typst/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information in a serializable form.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
