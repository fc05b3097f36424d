package rdpfacade

import (
	"context"
	"errors"
	"image"

	"github.com/myrtille/remotesession-bridge/internal/command"
)

// ErrNoClient is returned by Null.Connect: no real RDP client facade
// has been wired into this deployment.
var ErrNoClient = errors.New("rdpfacade: no client configured")

// Null is a Client that never reaches a real RDP server. It exists so
// the bridge can start up and accept commands in a deployment that has
// not wired a concrete facade implementation; the RDP protocol stack
// itself is out of scope for this repository. It reports no primary
// surface and no cursor, so the capture hooks return without emitting
// any frame while it is wired in.
type Null struct {
	disconnected chan struct{}
}

// NewNull returns a ready-to-use Null facade.
func NewNull() *Null {
	return &Null{disconnected: make(chan struct{})}
}

func (n *Null) Configure(ConnectionConfig) {}

func (n *Null) Connect(ctx context.Context) error {
	return ErrNoClient
}

func (n *Null) InjectKeyUnicode(code int, down bool) {}
func (n *Null) InjectKeyScancode(code int, down bool, extended bool) {}
func (n *Null) InjectMouseMove(x, y int) {}
func (n *Null) InjectMouseButton(button command.MouseButtonKind, down bool, x, y int) {}
func (n *Null) InjectMouseWheel(direction command.WheelDirection, x, y int) {}
func (n *Null) RequestClipboardText() {}

func (n *Null) RenderCursorMask() (*image.RGBA, int, int, bool) {
	return nil, 0, 0, false
}

func (n *Null) PrimarySurfaceReady() bool { return false }

func (n *Null) Disconnected() <-chan struct{} { return n.disconnected }
