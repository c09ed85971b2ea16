package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFromSettings(t *testing.T) {
	tests := []struct {
		name          string
		buildTime     string
		settings      []debug.BuildSetting
		wantCommit    string
		wantBuildTime string
	}{
		{
			name:          "no vcs info",
			buildTime:     "unknown",
			wantCommit:    "unknown",
			wantBuildTime: "unknown",
		},
		{
			name:      "long revision is shortened",
			buildTime: "unknown",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
			wantCommit:    "0123456",
			wantBuildTime: "2026-01-02T03:04:05Z",
		},
		{
			name:      "ldflags build time wins",
			buildTime: "2026-05-01T00:00:00Z",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
			wantCommit:    "abc",
			wantBuildTime: "2026-05-01T00:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info{Version: "dev", Commit: "unknown", BuildTime: tt.buildTime}
			fillFromSettings(&info, tt.settings)
			if info.Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", info.Commit, tt.wantCommit)
			}
			if info.BuildTime != tt.wantBuildTime {
				t.Errorf("BuildTime = %q, want %q", info.BuildTime, tt.wantBuildTime)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.2.0", Commit: "abc1234", BuildTime: "2026-01-02", GoVersion: "go1.24.7"}
	want := "1.2.0 (abc1234) built 2026-01-02 go1.24.7"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("GoVersion = %q, want go prefix", info.GoVersion)
	}
}
