//go:build integration

package main

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Run with: go test -tags=integration ./cmd/dashboard -run LdflagsVersion -v
func TestLdflagsVersion_ReportedByBinary(t *testing.T) {
	described, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		t.Skipf("git describe unavailable: %v", err)
	}
	want := strings.TrimSpace(string(described))

	bin := filepath.Join(t.TempDir(), "dashboard")
	build := exec.Command("go", "build", "-ldflags", "-X main.version="+want, "-o", bin, ".")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}

	out, err := exec.Command(bin, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "dashboard version "+want {
		t.Errorf("binary should report the injected version %q, got %q", want, got)
	}
}
