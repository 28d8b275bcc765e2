package main

import (
	"runtime/debug"
	"testing"
)

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		name    string
		ldflags string
		info    *debug.BuildInfo
		want    string
	}{
		{
			name:    "ldflags wins over build info",
			ldflags: "v1.2.3",
			info:    &debug.BuildInfo{Main: debug.Module{Version: "v0.0.9"}},
			want:    "v1.2.3",
		},
		{
			// go install github.com/rastogi30/Personalized-Dashboard/cmd/dashboard@v0.4.0
			name:    "module version when installed",
			ldflags: "dev",
			info:    &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}},
			want:    "v0.4.0",
		},
		{
			name:    "local build reports dev",
			ldflags: "dev",
			info:    &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want:    "dev",
		},
		{
			name:    "empty module version",
			ldflags: "dev",
			info:    &debug.BuildInfo{},
			want:    "dev",
		},
		{
			name:    "no build info",
			ldflags: "dev",
			want:    "dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveVersion(tt.ldflags, tt.info); got != tt.want {
				t.Errorf("user should see version %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCurrentVersion_NeverEmpty(t *testing.T) {
	if currentVersion() == "" {
		t.Error("version should never be empty")
	}
}
