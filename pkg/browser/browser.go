// Package browser provides cross-platform browser opening functionality.
package browser

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Runner starts an external command without waiting for it.
type Runner func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // #nosec G204 -- URL validated by Open
}

// Opener opens URLs with the platform's browser launcher.
type Opener struct {
	goos    string
	browser string
	run     Runner
}

// Option configures an Opener.
type Option func(*Opener)

// WithRunner replaces how the launcher command is started.
func WithRunner(run Runner) Option {
	return func(o *Opener) { o.run = run }
}

// WithGOOS overrides the detected platform.
func WithGOOS(goos string) Option {
	return func(o *Opener) { o.goos = goos }
}

// WithBrowser sets an explicit browser command, as $BROWSER does.
func WithBrowser(command string) Option {
	return func(o *Opener) { o.browser = command }
}

// New creates an Opener for the current platform honoring $BROWSER.
func New(opts ...Option) *Opener {
	o := &Opener{
		goos:    runtime.GOOS,
		browser: os.Getenv("BROWSER"),
		run:     startCommand,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open opens the specified URL in the default browser.
// It validates the URL before passing it to the system browser to prevent command injection.
func (o *Opener) Open(urlString string) error {
	if err := Validate(urlString); err != nil {
		return err
	}

	if o.browser != "" {
		fields := strings.Fields(o.browser)
		return o.run(fields[0], append(fields[1:], urlString)...)
	}

	switch o.goos {
	case "linux", "freebsd", "openbsd":
		return o.run("xdg-open", urlString)
	case "darwin":
		return o.run("open", urlString)
	case "windows":
		return o.run("rundll32", "url.dll,FileProtocolHandler", urlString)
	default:
		return fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

// Validate accepts only well-formed http and https URLs.
func Validate(urlString string) error {
	parsedURL, err := url.Parse(urlString)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	// Whitelist allowed schemes to prevent malicious URLs
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q (only http and https allowed)", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}
	return nil
}

// Open opens the URL with a default Opener.
func Open(urlString string) error {
	return New().Open(urlString)
}
