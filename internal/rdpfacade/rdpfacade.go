// Package rdpfacade defines the abstract RDP client facade: the
// external collaborator the session bridge drives for connection
// setup, input injection, clipboard exchange, and cursor rendering.
// The RDP protocol stack itself is out of scope; only this narrow
// interface crosses the boundary.
package rdpfacade

import (
	"context"
	"image"

	"github.com/myrtille/remotesession-bridge/internal/command"
)

// ConnectionConfig accumulates the SRV/VMG/DOM/USR/PWD/PRG commands
// applied before CON triggers Connect.
type ConnectionConfig struct {
	Host       string
	Port       int
	HasPort    bool
	VMGuid     string
	VMConnect  bool
	Domain     string
	Username   string
	Password   string
	AltShell   string
}

// Client is the narrow surface the session bridge needs from a real
// RDP client implementation.
type Client interface {
	// Configure applies the accumulated connection settings. It may be
	// called multiple times before Connect as commands arrive.
	Configure(cfg ConnectionConfig)

	// Connect spawns the RDP client thread/connection. It does not
	// block waiting for the session to end; Disconnected reports that.
	Connect(ctx context.Context) error

	InjectKeyUnicode(code int, down bool)
	InjectKeyScancode(code int, down bool, extended bool)
	InjectMouseMove(x, y int)
	InjectMouseButton(button command.MouseButtonKind, down bool, x, y int)
	InjectMouseWheel(direction command.WheelDirection, x, y int)

	// RequestClipboardText asks the RDP server for its clipboard
	// content in UNICODETEXT format. The result arrives asynchronously
	// through whatever notification path the concrete client uses.
	RequestClipboardText()

	// RenderCursorMask draws the current pointer icon onto a solid
	// blue mask sized to the OS cursor metrics. ok is false when there
	// is no current cursor to render.
	RenderCursorMask() (masked *image.RGBA, hotX, hotY int, ok bool)

	// PrimarySurfaceReady reports whether the desktop has a drawing
	// surface to capture from yet.
	PrimarySurfaceReady() bool

	// Disconnected is closed when the RDP server ends the session.
	Disconnected() <-chan struct{}
}
