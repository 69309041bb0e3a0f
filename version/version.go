// Package version reports build information for the depbatch binary.
package version

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"time"
)

// Program is the binary name reported by the version command and the HTTP service.
const Program = "depbatch"

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
	GoVersion = ""
)

// Info represents version information.
type Info struct {
	Program   string    `json:"program" yaml:"program"`
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	BuildTime string    `json:"build_time,omitempty" yaml:"build_time,omitempty"`
	GoVersion string    `json:"go_version" yaml:"go_version"`
	BuildDate time.Time `json:"-" yaml:"-"`
	IsRelease bool      `json:"is_release" yaml:"is_release"`
	IsDirty   bool      `json:"is_dirty" yaml:"is_dirty"`
}

// GetVersionInfo returns build information, filling gaps from the
// module's embedded VCS settings.
func GetVersionInfo() *Info {
	info := &Info{
		Program:   Program,
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		applyBuildSettings(info, buildInfo)
	}
	return info
}

func applyBuildSettings(info *Info, buildInfo *debug.BuildInfo) {
	if info.GoVersion == "" {
		info.GoVersion = buildInfo.GoVersion
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = setting.Value
				if len(info.GitCommit) > 7 {
					info.GitCommit = info.GitCommit[:7]
				}
			}
		case "vcs.modified":
			info.IsDirty = setting.Value == "true"
		case "vcs.time":
			if info.BuildTime == "" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					info.BuildDate = t
					info.BuildTime = setting.Value
				}
			}
		}
	}
}

// Short returns "<version>[-<commit>][-dirty]".
func (i *Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	if i.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", i.Version, i.GitCommit)
	}
	return fmt.Sprintf("%s-%s", i.Version, i.GitCommit)
}

// Write prints the version block shown by `depbatch version`.
func (i *Info) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s\n", i.Program, i.Short())
	if err != nil {
		return err
	}
	if i.BuildTime != "" {
		if _, err := fmt.Fprintf(w, "  built:  %s\n", i.BuildTime); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "  go:     %s\n", i.GoVersion)
	return err
}

// GetShortVersion returns a short version string.
func GetShortVersion() string {
	return GetVersionInfo().Short()
}
