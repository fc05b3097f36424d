package main

import (
	"context"
	"image"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/myrtille/remotesession-bridge/internal/codec"
	"github.com/myrtille/remotesession-bridge/internal/diagnostics"
	"github.com/myrtille/remotesession-bridge/internal/screencap"
	"github.com/myrtille/remotesession-bridge/internal/wire"
)

// SendScreen captures the full desktop and emits it as a fullscreen
// frame, scaled to the client's dimensions when SCA is active.
func (s *Session) SendScreen() {
	if !s.rdp.PrimarySurfaceReady() {
		return
	}

	bmp, ok := s.screen.CaptureFull()
	if !ok {
		return
	}

	dw, dh := s.screen.DesktopSize()
	w, h := dw, dh

	s.policyMu.RLock()
	scale, cw, ch := s.policy.ScaleDisplay, s.policy.ClientW, s.policy.ClientH
	s.policyMu.RUnlock()

	if scale && cw > 0 && ch > 0 {
		bmp = screencap.Resize(bmp, cw, ch)
		w, h = cw, ch
	}

	s.process(bmp, 0, 0, w, h, true)
}

// SendRegion validates and rate-controls a partial-screen update
// before capturing and emitting it.
func (s *Session) SendRegion(rect screencap.Rect) {
	if !s.rdp.PrimarySurfaceReady() {
		return
	}

	dw, dh := s.screen.DesktopSize()
	if !rect.Valid(dw, dh) {
		return
	}

	s.policyMu.RLock()
	quantity := s.policy.Quantity
	scale, cw, ch := s.policy.ScaleDisplay, s.policy.ClientW, s.policy.ClientH
	s.policyMu.RUnlock()

	if !s.rate.Allow(quantity) {
		s.mtr.FramesDropped.Inc()
		return
	}

	bmp, ok := s.screen.CaptureRegion(rect)
	if !ok {
		return
	}

	reported := rect
	if scale && cw > 0 && ch > 0 {
		reported = screencap.ScaleRect(rect, dw, dh, cw, ch)
		bmp = screencap.Resize(bmp, reported.Width(), reported.Height())
	}

	s.process(bmp, reported.Left, reported.Top, reported.Width(), reported.Height(), false)
}

// SendCursor composites and emits the current pointer icon, unless it
// is empty (no opaque black pixel survived compositing) or there is no
// primary surface to draw it over.
func (s *Session) SendCursor() {
	if !s.rdp.PrimarySurfaceReady() {
		return
	}

	masked, hotX, hotY, ok := s.rdp.RenderCursorMask()
	if !ok {
		return
	}

	cur := codec.CompositeCursor(masked, hotX, hotY)
	if cur.Empty {
		return
	}

	payload, err := s.codec.EncodePNG(cur.Bitmap)
	if err != nil {
		s.log.Warn("cursor encode failed", zap.Error(err))
		s.mtr.EncodeFailures.WithLabelValues(wire.FormatCursor.String()).Inc()
		return
	}

	bounds := cur.Bitmap.Bounds()
	frame := wire.ImageFrame{
		Idx:     s.rate.NextIdx(),
		PosX:    uint32(cur.HotX),
		PosY:    uint32(cur.HotY),
		Width:   uint32(bounds.Dx()),
		Height:  uint32(bounds.Dy()),
		Format:  wire.FormatCursor,
		Quality: codec.QualityHighest,
		Payload: payload,
	}
	s.writer.emitFrame(frame)
	s.mtr.FramesEncoded.WithLabelValues(wire.FormatCursor.String()).Inc()
	s.recordFrame(frame)
}

// process is the shared encode-and-emit pipeline for full-screen and
// region captures: compute the effective quality, encode per the
// current policy, allocate the next frame index, and hand the result
// to the updates actor. A write failure through the actor already
// stops further input processing (see updatesActor.failed); a local
// encode failure only drops this one frame.
func (s *Session) process(bitmap image.Image, x, y, w, h int, fullscreen bool) {
	s.policyMu.RLock()
	encoding, quality := s.policy.Encoding, s.policy.Quality
	s.policyMu.RUnlock()

	effQuality := codec.EffectiveQuality(encoding, fullscreen, quality)

	format, payload, err := s.codec.Encode(encoding, bitmap, effQuality)
	if err != nil {
		s.log.Warn("frame encode failed", zap.String("encoding", encoding.String()), zap.Error(err))
		s.mtr.EncodeFailures.WithLabelValues(encoding.String()).Inc()
		return
	}

	if encoding == codec.EncodingAuto && format == wire.FormatPNG {
		effQuality = codec.QualityHighest
	}

	frame := wire.ImageFrame{
		Idx:        s.rate.NextIdx(),
		PosX:       uint32(x),
		PosY:       uint32(y),
		Width:      uint32(w),
		Height:     uint32(h),
		Format:     format,
		Quality:    uint32(effQuality),
		Fullscreen: fullscreen,
		Payload:    payload,
	}
	s.writer.emitFrame(frame)
	s.mtr.FramesEncoded.WithLabelValues(format.String()).Inc()
	s.log.Debug("frame encoded",
		zap.String("format", format.String()),
		zap.String("size", humanize.Bytes(uint64(len(payload)))),
		zap.Bool("fullscreen", fullscreen))
	s.recordFrame(frame)
}

// recordFrame logs the emitted frame to the debug-artifact store when
// one is configured. Logging failures are non-fatal to the capture
// pipeline; they're only ever a diagnostics concern.
func (s *Session) recordFrame(f wire.ImageFrame) {
	if s.diag == nil {
		return
	}
	rec := diagnostics.FrameRecord{
		Idx:          f.Idx,
		Format:       f.Format.String(),
		Quality:      int(f.Quality),
		Width:        int(f.Width),
		Height:       int(f.Height),
		Fullscreen:   f.Fullscreen,
		PayloadBytes: len(f.Payload),
		RecordedAt:   time.Now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.diag.RecordFrame(ctx, rec); err != nil {
		s.log.Warn("diagnostics record frame failed", zap.Error(err))
	}
}
