package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func reset(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = "dev", "none", "unknown"
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Fatalf("Get() = %+v", info)
	}
	if !strings.HasPrefix(info.String(), Version+" (") {
		t.Errorf("String() = %q", info.String())
	}
}

func TestFromBuildInfo(t *testing.T) {
	reset(t)
	fromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef1234567890"},
			{Key: "vcs.time", Value: "2025-06-03T12:00:00Z"},
		},
	})
	if Version != "v1.2.3" || Commit != "abcdef1" || Date != "2025-06-03T12:00:00Z" {
		t.Fatalf("got %s %s %s", Version, Commit, Date)
	}
}

func TestFromBuildInfo_DevelAndShortRevision(t *testing.T) {
	reset(t)
	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}},
	})
	if Version != "dev" || Commit != "abc" {
		t.Fatalf("got %s %s", Version, Commit)
	}
}

func TestFromBuildInfo_LdflagsWin(t *testing.T) {
	reset(t)
	Version, Commit = "v9.9.9", "1234567"
	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "fffffffffff"}},
	})
	if Version != "v9.9.9" || Commit != "1234567" {
		t.Fatalf("ldflags values overwritten: %s %s", Version, Commit)
	}
	fromBuildInfo(nil)
}
