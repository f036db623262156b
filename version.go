package main

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Set with -ldflags "-X main.commit=... -X main.buildDate=..." in release builds.
var (
	commit    = "dev"
	buildDate = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "dev" && len(s.Value) >= 7 {
				commit = s.Value[:7]
			}
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil && buildDate == "" {
				buildDate = t.Format("2006-01-02")
			}
		}
	}
}

func userAgent() string { return "boardclient/" + commit }

func versionString() string {
	if buildDate == "" {
		return fmt.Sprintf("boardclient %s", commit)
	}
	return fmt.Sprintf("boardclient %s (%s)", commit, buildDate)
}
