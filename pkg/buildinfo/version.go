// Package buildinfo reports which dragswitch build is running.
//
// Release builds stamp the variables below with -ldflags -X. Development
// builds leave them unset and fall back to what the Go toolchain embedded:
// the module version and the VCS revision and time of the checkout.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Stamped at link time.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// Info describes a dragswitch binary.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Modified  bool
}

// Read returns the stamped build information, completed from the embedded
// module data where a field was not stamped.
func Read() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fill(info, bi)
	}
	if info.Version == "" {
		info.Version = "devel"
	}
	return info
}

func fill(info Info, bi *debug.BuildInfo) Info {
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
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String renders info on one line, e.g.
// "dragswitch v0.3.0 (1a2b3c4d, 2026-01-02T15:04:05Z, go1.24.0)".
func (i Info) String() string {
	s := "dragswitch " + i.Version
	var details []string
	if i.Commit != "" {
		c := i.Commit
		if len(c) > 8 {
			c = c[:8]
		}
		if i.Modified {
			c += "+dirty"
		}
		details = append(details, c)
	}
	if i.Date != "" {
		details = append(details, i.Date)
	}
	details = append(details, i.GoVersion)
	for n, d := range details {
		if n == 0 {
			s += " (" + d
		} else {
			s += ", " + d
		}
	}
	return s + ")"
}

// Template returns the cobra version template. It prints the build line
// of the running binary and ignores the command's own version field.
func Template() string {
	return fmt.Sprintln(Read())
}
