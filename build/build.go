// Package build reports version information for the ifempty-gen binary.
//
// Release builds inject a JSON blob through -ldflags:
//
//	go build -ldflags "-X 'github.com/amp-labs/ifempty/build.infoJSON={\"version\":\"v1.2.0\"}'"
//
// Everything else (go install, go run pkg@version) falls back to the module
// version recorded by the Go toolchain.
package build

import (
	"encoding/json"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/amp-labs/ifempty/ifempty"
	"github.com/samber/lo"
)

const develVersion = "dev"

var infoJSON string

// Info contains build metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"` //nolint:tagliatelle
	BuildTime string `json:"build_time"` //nolint:tagliatelle
	GoVersion string `json:"go_version"` //nolint:tagliatelle
}

// Parse deserializes a JSON string into build Info.
// Returns (nil, false) if the input is empty, "{}", or fails to parse.
func Parse(js string) (*Info, bool) {
	if len(js) == 0 || js == "{}" {
		return nil, false
	}

	var info Info

	if err := json.Unmarshal([]byte(js), &info); err != nil {
		slog.Warn("Failed to parse build info from JSON",
			"data", js,
			"error", err)

		return nil, false
	}

	return &info, true
}

// FromBuildInfo extracts Info from what the Go toolchain embedded in the
// binary. A nil bi yields an Info with only the devel version set.
func FromBuildInfo(bi *debug.BuildInfo) *Info {
	info := &Info{Version: develVersion}
	if bi == nil {
		return info
	}

	info.GoVersion = bi.GoVersion

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
		case "vcs.time":
			info.BuildTime = setting.Value
		}
	}

	return info
}

// Get returns the build info of the running binary, preferring injected
// values over the toolchain's.
func Get() *Info {
	bi, _ := debug.ReadBuildInfo()
	fallback := FromBuildInfo(bi)

	injected, ok := Parse(infoJSON)
	if !ok {
		return fallback
	}

	injected.Version = ifempty.String(injected.Version, fallback.Version)
	injected.GitCommit = ifempty.String(injected.GitCommit, fallback.GitCommit)
	injected.BuildTime = ifempty.String(injected.BuildTime, fallback.BuildTime)
	injected.GoVersion = ifempty.String(injected.GoVersion, fallback.GoVersion)

	return injected
}

// String is a one-line description suitable for a --version flag, e.g.
// "v1.2.0 (3f2c1a9, go1.25.0)".
func (i *Info) String() string {
	details := lo.Compact([]string{shortCommit(i.GitCommit), i.GoVersion})
	if len(details) == 0 {
		return i.Version
	}

	return i.Version + " (" + strings.Join(details, ", ") + ")"
}

func shortCommit(commit string) string {
	const length = 7

	if len(commit) > length {
		return commit[:length]
	}

	return commit
}
