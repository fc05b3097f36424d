package main

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/myrtille/remotesession-bridge/internal/codec"
	"github.com/myrtille/remotesession-bridge/internal/command"
	"github.com/myrtille/remotesession-bridge/internal/metrics"
	"github.com/myrtille/remotesession-bridge/internal/printer"
	"github.com/myrtille/remotesession-bridge/internal/screencap"
	"github.com/myrtille/remotesession-bridge/internal/wire"
)

type testRig struct {
	sess    *Session
	rdp     *fakeRDP
	screen  *fakeScreen
	prints  *printer.Registry
	spooler *fakeSpooler
	mtr     *metrics.Metrics
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	rdp := newFakeRDP()
	screen := newFakeScreen(200, 100)
	c := codec.New(nil)
	sp := &fakeSpooler{}
	prints := printer.New(sp, nil)
	_, err := prints.EnumPrinters()
	require.NoError(t, err)
	mtr := metrics.New(prometheus.NewRegistry())

	sess := NewSession(1, zap.NewNop(), rdp, screen, c, prints, mtr, nil)
	return &testRig{sess: sess, rdp: rdp, screen: screen, prints: prints, spooler: sp, mtr: mtr}
}

// withWriter attaches a live updatesActor over dst so capture/printer
// paths that call s.writer.emit* don't block, and returns a function
// that stops the actor after draining every already-queued emission.
func (r *testRig) withWriter(dst io.Writer) (stop func()) {
	r.sess.writer = newUpdatesActor(dst, zap.NewNop())
	r.sess.writer.failed = func() { r.sess.processInputs.Store(false) }

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.sess.writer.run()
	}()

	return func() {
		close(r.sess.writer.emit)
		wg.Wait()
	}
}

func mustParse(t *testing.T, record string) command.Command {
	t.Helper()
	cmd, err := command.Parse(record)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	return cmd
}

func TestApplyUnicodeKeystroke(t *testing.T) {
	rig := newTestRig(t)
	rig.sess.apply(mustParse(t, "KUC65-1"))

	require.Len(t, rig.rdp.unicodeCalls, 1)
	assert.Equal(t, 65, rig.rdp.unicodeCalls[0].code)
	assert.True(t, rig.rdp.unicodeCalls[0].down)
}

func TestApplyMouseWheelDown(t *testing.T) {
	rig := newTestRig(t)
	rig.sess.apply(mustParse(t, "MWD10-20"))

	require.Len(t, rig.rdp.wheelCalls, 1)
	assert.Equal(t, command.WheelDown, rig.rdp.wheelCalls[0].dir)
	assert.Equal(t, 10, rig.rdp.wheelCalls[0].x)
	assert.Equal(t, 20, rig.rdp.wheelCalls[0].y)
}

func TestApplyEncodingQualityThenFullscreen(t *testing.T) {
	rig := newTestRig(t)
	buf := &bytes.Buffer{}
	stop := rig.withWriter(buf)

	rig.sess.apply(mustParse(t, "ECD2")) // JPEG
	rig.sess.apply(mustParse(t, "QLT30"))
	rig.sess.apply(mustParse(t, "FSU"))

	stop()

	assert.Equal(t, 1, rig.screen.fullCalls)

	f, _, err := wire.DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, wire.FormatJPEG, f.Format)
	assert.True(t, f.Fullscreen)
}

func TestApplyScaledRegionScalesPixelsAndCoords(t *testing.T) {
	rig := newTestRig(t)
	buf := &bytes.Buffer{}
	stop := rig.withWriter(buf)

	rig.sess.apply(mustParse(t, "SCA100x50"))
	rig.sess.SendRegion(screencap.Rect{Left: 0, Top: 0, Right: 200, Bottom: 100})
	stop()

	// SCA also emits a "reload" text message ahead of the frame.
	_, consumed, err := wire.DecodeText(buf.Bytes())
	require.NoError(t, err)

	f, _, err := wire.DecodeImage(buf.Bytes()[consumed:])
	require.NoError(t, err)
	assert.Equal(t, uint32(100), f.Width)
	assert.Equal(t, uint32(50), f.Height)
	assert.False(t, f.Fullscreen)
}

func TestSendRegionRejectsOutOfBoundsRect(t *testing.T) {
	rig := newTestRig(t)
	buf := &bytes.Buffer{}
	stop := rig.withWriter(buf)

	rig.sess.SendRegion(screencap.Rect{Left: 0, Top: 0, Right: 9999, Bottom: 9999})
	stop()

	assert.Empty(t, rig.screen.regionReqs)
	assert.Equal(t, 0, buf.Len())
}

func TestSendRegionInvertedRectRejected(t *testing.T) {
	rig := newTestRig(t)
	buf := &bytes.Buffer{}
	stop := rig.withWriter(buf)

	rig.sess.SendRegion(screencap.Rect{Left: 50, Top: 0, Right: 10, Bottom: 10})
	stop()

	assert.Empty(t, rig.screen.regionReqs)
	assert.Equal(t, 0, buf.Len())
}

func TestSendScreenNoopWithoutPrimarySurface(t *testing.T) {
	rig := newTestRig(t)
	rig.rdp.primaryReady = false
	buf := &bytes.Buffer{}
	stop := rig.withWriter(buf)

	rig.sess.SendScreen()
	stop()

	assert.Equal(t, 0, rig.screen.fullCalls)
	assert.Equal(t, 0, buf.Len())
}

func TestRateControlledRegionDrop(t *testing.T) {
	rig := newTestRig(t)
	buf := &bytes.Buffer{}
	stop := rig.withWriter(buf)

	rig.sess.apply(mustParse(t, "QNT25"))

	rect := screencap.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	for i := 0; i < 3; i++ {
		rig.sess.SendRegion(rect)
	}
	stop()

	assert.Len(t, rig.screen.regionReqs, 0, "quantity 25 emits every 4th frame; 3 calls should all be dropped")
	assert.Equal(t, float64(3), testutil.ToFloat64(rig.mtr.FramesDropped))
}

func TestCloseCommandStopsInputProcessing(t *testing.T) {
	rig := newTestRig(t)
	reader := strings.NewReader("MMO1-1\tCLO\tKUC65-1")
	rig.sess.inputsCh = nopCloser{reader}

	rig.sess.readLoop()

	assert.False(t, rig.sess.processInputs.Load())
	assert.Empty(t, rig.rdp.unicodeCalls, "commands after CLO must not be applied")
}

func TestPrinterCloseNotifiesOnPDFPrinter(t *testing.T) {
	rig := newTestRig(t)
	buf := &bytes.Buffer{}
	stop := rig.withWriter(buf)
	rig.prints.SetNotifier(func(text string) { rig.sess.writer.emitText(text) })

	err := rig.sess.OnPrinterDocumentOpen("Myrtille PDF", "ignored-hint.pdf")
	require.NoError(t, err)
	err = rig.sess.OnPrinterDocumentClose("Myrtille PDF")
	require.NoError(t, err)
	stop()

	text, _, err := wire.DecodeText(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "printjob|FREERDPjob"))
	assert.True(t, strings.HasSuffix(text, ".pdf"))
}

func TestPrinterNonPDFDoesNotNotify(t *testing.T) {
	rig := newTestRig(t)
	buf := &bytes.Buffer{}
	stop := rig.withWriter(buf)
	rig.prints.SetNotifier(func(text string) { rig.sess.writer.emitText(text) })

	require.NoError(t, rig.sess.OnPrinterDocumentOpen("Office Printer", "report.doc"))
	require.NoError(t, rig.sess.OnPrinterDocumentClose("Office Printer"))
	stop()

	assert.Equal(t, 0, buf.Len())
}

// nopCloser adapts an io.Reader to ipc.Channel for tests that only
// drive the input side.
type nopCloser struct{ io.Reader }

func (nopCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopCloser) Close() error                { return nil }
