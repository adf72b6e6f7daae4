// Package browser opens URLs with the operating system's default handler.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener implements ports.BrowserOpener
type Opener struct {
	goos string
}

// NewOpener creates an opener for the running operating system
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS}
}

// Open launches the handler for rawURL without waiting for it to exit
func (o *Opener) Open(rawURL string) error {
	cmd, err := o.Command(rawURL)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", cmd.Path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Command returns the launcher invocation for rawURL
func (o *Opener) Command(rawURL string) (*exec.Cmd, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("not an absolute url: %q", rawURL)
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", rawURL), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", rawURL), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
