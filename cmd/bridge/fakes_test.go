package main

import (
	"context"
	"image"

	"github.com/myrtille/remotesession-bridge/internal/command"
	"github.com/myrtille/remotesession-bridge/internal/rdpfacade"
	"github.com/myrtille/remotesession-bridge/internal/screencap"
	"github.com/myrtille/remotesession-bridge/internal/spoolerfacade"
)

type keyCall struct {
	code     int
	down     bool
	extended bool
}

type pointCall struct{ x, y int }

type buttonCall struct {
	button command.MouseButtonKind
	down   bool
	x, y   int
}

type wheelCall struct {
	dir  command.WheelDirection
	x, y int
}

// fakeRDP is a rdpfacade.Client test double recording every call it
// receives, so dispatch tests can assert on invocation rather than
// observable side effects.
type fakeRDP struct {
	cfg rdpfacade.ConnectionConfig

	connectCalls int
	connectErr   error

	unicodeCalls  []keyCall
	scancodeCalls []keyCall
	moveCalls     []pointCall
	buttonCalls   []buttonCall
	wheelCalls    []wheelCall

	clipboardRequests int

	cursorMask *image.RGBA
	cursorHotX int
	cursorHotY int
	cursorOK   bool

	primaryReady bool
	disconnected chan struct{}
}

func newFakeRDP() *fakeRDP {
	return &fakeRDP{disconnected: make(chan struct{}), primaryReady: true}
}

func (f *fakeRDP) Configure(cfg rdpfacade.ConnectionConfig) { f.cfg = cfg }

func (f *fakeRDP) Connect(ctx context.Context) error {
	f.connectCalls++
	return f.connectErr
}

func (f *fakeRDP) InjectKeyUnicode(code int, down bool) {
	f.unicodeCalls = append(f.unicodeCalls, keyCall{code: code, down: down})
}

func (f *fakeRDP) InjectKeyScancode(code int, down, extended bool) {
	f.scancodeCalls = append(f.scancodeCalls, keyCall{code: code, down: down, extended: extended})
}

func (f *fakeRDP) InjectMouseMove(x, y int) {
	f.moveCalls = append(f.moveCalls, pointCall{x: x, y: y})
}

func (f *fakeRDP) InjectMouseButton(button command.MouseButtonKind, down bool, x, y int) {
	f.buttonCalls = append(f.buttonCalls, buttonCall{button: button, down: down, x: x, y: y})
}

func (f *fakeRDP) InjectMouseWheel(direction command.WheelDirection, x, y int) {
	f.wheelCalls = append(f.wheelCalls, wheelCall{dir: direction, x: x, y: y})
}

func (f *fakeRDP) RequestClipboardText() { f.clipboardRequests++ }

func (f *fakeRDP) RenderCursorMask() (*image.RGBA, int, int, bool) {
	return f.cursorMask, f.cursorHotX, f.cursorHotY, f.cursorOK
}

func (f *fakeRDP) PrimarySurfaceReady() bool { return f.primaryReady }

func (f *fakeRDP) Disconnected() <-chan struct{} { return f.disconnected }

// fakeScreen is a screencap.ScreenSource test double returning a fixed
// solid-color bitmap sized to the configured desktop.
type fakeScreen struct {
	w, h       int
	fullCalls  int
	regionReqs []screencap.Rect
}

func newFakeScreen(w, h int) *fakeScreen { return &fakeScreen{w: w, h: h} }

func (f *fakeScreen) DesktopSize() (int, int) { return f.w, f.h }

func (f *fakeScreen) CaptureFull() (image.Image, bool) {
	f.fullCalls++
	return image.NewRGBA(image.Rect(0, 0, f.w, f.h)), true
}

func (f *fakeScreen) CaptureRegion(r screencap.Rect) (image.Image, bool) {
	if !r.Valid(f.w, f.h) {
		return nil, false
	}
	f.regionReqs = append(f.regionReqs, r)
	return image.NewRGBA(image.Rect(0, 0, r.Width(), r.Height())), true
}

// fakeSpooler is a minimal in-memory spoolerfacade.Spooler, enough to
// exercise the printer bridge's open/write/close wiring.
type fakeSpooler struct {
	nextHandle spoolerfacade.PrinterHandle
	nextJob    spoolerfacade.JobHandle
	written    [][]byte
}

func (f *fakeSpooler) EnumPrinters() ([]spoolerfacade.PrinterInfo, error) {
	return []spoolerfacade.PrinterInfo{{Name: "Myrtille PDF"}, {Name: "Office Printer"}}, nil
}

func (f *fakeSpooler) OpenPrinter(name string) (spoolerfacade.PrinterHandle, error) {
	f.nextHandle++
	return f.nextHandle, nil
}

func (f *fakeSpooler) ClosePrinter(handle spoolerfacade.PrinterHandle) error { return nil }

func (f *fakeSpooler) StartDoc(handle spoolerfacade.PrinterHandle, docName string) (spoolerfacade.JobHandle, error) {
	f.nextJob++
	return f.nextJob, nil
}

func (f *fakeSpooler) StartPage(job spoolerfacade.JobHandle) error { return nil }

func (f *fakeSpooler) WritePage(job spoolerfacade.JobHandle, data []byte) (int, error) {
	f.written = append(f.written, data)
	return len(data), nil
}

func (f *fakeSpooler) EndPage(job spoolerfacade.JobHandle) error { return nil }
func (f *fakeSpooler) EndDoc(job spoolerfacade.JobHandle) error  { return nil }
