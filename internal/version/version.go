package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Build metadata, normally injected by the release build:
//
//	go build -ldflags="-X github.com/muurk/gridbook/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/gridbook/internal/version.Commit=abc1234"
//
// Local builds fall back to the VCS stamp in the binary, and finally to a
// dated dev version.
var (
	Version = ""
	Commit  = ""
)

// Info is the resolved build metadata printed by `gridbook version`
type Info struct {
	Version   string
	Commit    string
	Modified  bool
	GoVersion string
}

func init() {
	info := resolve(Version, Commit, readVCS())
	Version, Commit = info.Version, info.Commit
}

// vcsStamp holds the vcs.* settings embedded by the go command
type vcsStamp struct {
	revision string
	modified bool
	time     time.Time
}

func readVCS() vcsStamp {
	var stamp vcsStamp

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return stamp
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			stamp.revision = setting.Value
		case "vcs.modified":
			stamp.modified = setting.Value == "true"
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
				stamp.time = t
			}
		}
	}
	return stamp
}

// resolve fills whatever ldflags left empty from the VCS stamp
func resolve(version, commit string, stamp vcsStamp) Info {
	info := Info{
		Version:   version,
		Commit:    commit,
		Modified:  stamp.modified,
		GoVersion: runtime.Version(),
	}

	if info.Commit == "" && stamp.revision != "" {
		info.Commit = stamp.revision[:min(len(stamp.revision), 7)]
		if stamp.modified {
			info.Commit += "-dirty"
		}
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}

	if info.Version == "" {
		when := stamp.time
		if when.IsZero() {
			when = time.Now()
		}
		info.Version = "dev-" + when.Format("20060102")
	}

	return info
}

// Get returns the resolved build metadata
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Modified:  readVCS().modified,
		GoVersion: runtime.Version(),
	}
}

// Full returns the version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
