// Package clipboard copies text to the system clipboard, choosing between
// the native API and the Wayland or X11 command line tools.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"

	"gitlabtree/internal/ports"
)

// Backend identifies the mechanism used to reach the clipboard
type Backend int

const (
	None Backend = iota
	Native
	WlCopy
	Xclip
)

func (b Backend) String() string {
	switch b {
	case Native:
		return "native"
	case WlCopy:
		return "wl-copy"
	case Xclip:
		return "xclip"
	default:
		return "none"
	}
}

// SelectBackend picks the first usable backend: native, then wl-copy under
// Wayland, then xclip under X11
func SelectBackend(probe ports.ClipboardProbe) Backend {
	switch {
	case probe.NativeAvailable():
		return Native
	case probe.HasWayland() && probe.CommandExists("wl-copy"):
		return WlCopy
	case probe.HasDisplay() && probe.CommandExists("xclip"):
		return Xclip
	default:
		return None
	}
}

// New returns a sink for the selected backend. The sink is nil for None.
func New(probe ports.ClipboardProbe) (ports.ClipboardSink, Backend) {
	backend := SelectBackend(probe)
	switch backend {
	case Native:
		return nativeSink{}, backend
	case WlCopy:
		return &CommandSink{Name: "wl-copy"}, backend
	case Xclip:
		return &CommandSink{Name: "xclip", Args: []string{"-selection", "clipboard"}}, backend
	default:
		return nil, backend
	}
}

type nativeSink struct{}

func (nativeSink) SetText(text string) error {
	return clipboard.WriteAll(text)
}

// CommandSink pipes text into an external command's stdin
type CommandSink struct {
	Name string
	Args []string
}

// SetText runs the command and waits for it to exit
func (c *CommandSink) SetText(text string) error {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("clipboard command exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("clipboard command exited with status %d: %s", exitErr.ExitCode(), msg)
	case err != nil:
		return fmt.Errorf("clipboard command failed: %w", err)
	}
	return nil
}

// SystemProbe inspects the real environment
type SystemProbe struct{}

func (SystemProbe) NativeAvailable() bool {
	return !clipboard.Unsupported
}

func (SystemProbe) HasWayland() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

func (SystemProbe) HasDisplay() bool {
	return os.Getenv("DISPLAY") != ""
}

func (SystemProbe) CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
