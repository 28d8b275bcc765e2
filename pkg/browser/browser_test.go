package browser

import (
	"errors"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

func recorder(calls *[]call) Runner {
	return func(name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return nil
	}
}

func TestOpen_UsesPlatformLauncher(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "xdg-open"},
		{"darwin", "open"},
		{"windows", "rundll32"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var calls []call
			err := New(WithGOOS(tt.goos), WithBrowser(""), WithRunner(recorder(&calls))).Open("https://example.com")
			if err != nil {
				t.Fatalf("valid URL should open: %v", err)
			}
			if len(calls) != 1 || calls[0].name != tt.want {
				t.Fatalf("expected %s to be started, got %+v", tt.want, calls)
			}
			if last := calls[0].args[len(calls[0].args)-1]; last != "https://example.com" {
				t.Errorf("URL should be passed last, got %q", last)
			}
		})
	}
}

func TestOpen_HonorsBrowserCommand(t *testing.T) {
	var calls []call
	err := New(WithBrowser("firefox --new-tab"), WithRunner(recorder(&calls))).Open("http://example.com/a")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls[0].name != "firefox" || strings.Join(calls[0].args, " ") != "--new-tab http://example.com/a" {
		t.Errorf("unexpected command %+v", calls[0])
	}
}

func TestOpen_UnsupportedPlatform(t *testing.T) {
	err := New(WithGOOS("plan9"), WithBrowser(""), WithRunner(recorder(new([]call)))).Open("https://example.com")

	if err == nil || !strings.Contains(err.Error(), "unsupported platform") {
		t.Errorf("expected platform error, got %v", err)
	}
}

func TestOpen_ReturnsRunnerError(t *testing.T) {
	boom := errors.New("no display")
	err := New(WithGOOS("linux"), WithBrowser(""), WithRunner(func(string, ...string) error { return boom })).Open("https://example.com")

	if !errors.Is(err, boom) {
		t.Errorf("runner error should be returned, got %v", err)
	}
}

func TestOpen_RejectsInvalidScheme(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"file scheme", "file:///etc/passwd"},
		{"javascript scheme", "javascript:alert(1)"},
		{"data scheme", "data:text/html,<script>alert(1)</script>"},
		{"ftp scheme", "ftp://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []call
			err := New(WithRunner(recorder(&calls))).Open(tt.url)
			if err == nil {
				t.Fatalf("Should reject %s, but got no error", tt.url)
			}
			if !strings.Contains(err.Error(), "unsupported URL scheme") {
				t.Errorf("Expected scheme error, got: %v", err)
			}
			if len(calls) != 0 {
				t.Error("nothing should be started for a rejected URL")
			}
		})
	}
}

func TestOpen_RejectsMalformedURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"newline injection", "http://example.com\nrm -rf /"},
		{"null byte", "http://example.com\x00"},
		{"missing host", "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []call
			if err := New(WithRunner(recorder(&calls))).Open(tt.url); err == nil {
				t.Errorf("Should reject %q", tt.url)
			}
			if len(calls) != 0 {
				t.Error("nothing should be started for a rejected URL")
			}
		})
	}
}

func TestOpen_RejectsEmptyURL(t *testing.T) {
	err := Validate("")
	if err == nil {
		t.Error("Should reject empty URL")
	}
}

func TestOpen_RejectsURLWithoutScheme(t *testing.T) {
	err := Validate("example.com")
	if err == nil || !strings.Contains(err.Error(), "unsupported URL scheme") {
		t.Errorf("Expected scheme error, got: %v", err)
	}
}
