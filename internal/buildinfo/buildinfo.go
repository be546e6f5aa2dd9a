// Package buildinfo provides build metadata for sha2stream binaries.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is injected with -ldflags "-X sha2stream/internal/buildinfo.Version=...".
	Version string
	// Commit is injected at build time; falls back to the vcs.revision build setting.
	Commit string
	// Date is injected at build time; falls back to the vcs.time build setting.
	Date string
)

// Info contains normalized build metadata.
type Info struct {
	Version string
	Commit  string
	Date    string
	Go      string
	OS      string
	Arch    string
}

// Get returns build metadata, preferring linker flags, then embedded VCS settings, then defaults.
func Get() Info {
	info := Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		}
	}
}

// String formats build metadata for CLI output.
func (i Info) String() string {
	return fmt.Sprintf("sha2stream %s\ncommit: %s\nbuilt:  %s\ngo:     %s\nos/arch:%s/%s", i.Version, i.Commit, i.Date, i.Go, i.OS, i.Arch)
}
