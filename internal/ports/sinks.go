package ports

// ClipboardSink receives copied text
type ClipboardSink interface {
	SetText(text string) error
}

// ClipboardProbe reports which clipboard mechanisms the host offers
type ClipboardProbe interface {
	// NativeAvailable reports whether the OS clipboard can be driven directly
	NativeAvailable() bool

	// HasWayland reports a Wayland session (WAYLAND_DISPLAY set)
	HasWayland() bool

	// HasDisplay reports an X11 session (DISPLAY set)
	HasDisplay() bool

	// CommandExists reports whether an executable is resolvable on PATH
	CommandExists(name string) bool
}

// BrowserOpener opens a URL in the user's default handler
type BrowserOpener interface {
	Open(url string) error
}
