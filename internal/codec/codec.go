// Package codec implements the frame codec (C1) and cursor compositor
// (C2): encoding a captured bitmap to PNG/JPEG/WebP and compositing
// the pointer icon into a transparency-masked frame.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/myrtille/remotesession-bridge/internal/bridgeerr"
	"github.com/myrtille/remotesession-bridge/internal/wire"
)

// Codec encodes bitmaps for the updates channel. The zero value is
// not usable; construct with New.
type Codec struct {
	webp WebPEncoder
}

// New builds a Codec. webp may be nil, in which case WebP requests
// fall back to FallbackWebPEncoder.
func New(webp WebPEncoder) *Codec {
	if webp == nil {
		webp = &FallbackWebPEncoder{}
	}
	return &Codec{webp: webp}
}

// EncodePNG losslessly encodes bitmap.
func (c *Codec) EncodePNG(bitmap image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, bitmap); err != nil {
		return nil, bridgeerr.New(bridgeerr.Encode, wire.FormatPNG.String(), err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG encodes bitmap at the given quality, 1..100.
func (c *Codec) EncodeJPEG(bitmap image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, bitmap, &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
		return nil, bridgeerr.New(bridgeerr.Encode, wire.FormatJPEG.String(), err)
	}
	return buf.Bytes(), nil
}

// EncodeWebP encodes bitmap at the given quality, 0..100, via the
// injected WebPEncoder.
func (c *Codec) EncodeWebP(bitmap image.Image, quality int) ([]byte, error) {
	if quality < 0 {
		quality = 0
	} else if quality > 100 {
		quality = 100
	}
	out, err := c.webp.Encode(bitmap, quality)
	if err != nil {
		return nil, bridgeerr.New(bridgeerr.Encode, wire.FormatWebP.String(), err)
	}
	return out, nil
}

// EncodeAuto encodes bitmap with both PNG and JPEG and returns
// whichever payload is smaller, along with the format that won.
func (c *Codec) EncodeAuto(bitmap image.Image, jpegQuality int) (wire.Format, []byte, error) {
	pngBytes, pngErr := c.EncodePNG(bitmap)
	jpegBytes, jpegErr := c.EncodeJPEG(bitmap, jpegQuality)

	switch {
	case pngErr != nil && jpegErr != nil:
		return 0, nil, fmt.Errorf("auto encode: png failed (%v), jpeg failed (%v)", pngErr, jpegErr)
	case pngErr != nil:
		return wire.FormatJPEG, jpegBytes, nil
	case jpegErr != nil:
		return wire.FormatPNG, pngBytes, nil
	case len(pngBytes) <= len(jpegBytes):
		return wire.FormatPNG, pngBytes, nil
	default:
		return wire.FormatJPEG, jpegBytes, nil
	}
}

// Encode dispatches to the policy-selected encoder. For AUTO it
// returns the winning format so the caller can re-apply the
// PNG-forces-HIGHEST quality rule to the frame's reported metadata.
func (c *Codec) Encode(encoding Encoding, bitmap image.Image, quality int) (wire.Format, []byte, error) {
	switch encoding {
	case EncodingPNG:
		b, err := c.EncodePNG(bitmap)
		return wire.FormatPNG, b, err
	case EncodingJPEG:
		b, err := c.EncodeJPEG(bitmap, quality)
		return wire.FormatJPEG, b, err
	case EncodingWebP:
		b, err := c.EncodeWebP(bitmap, quality)
		return wire.FormatWebP, b, err
	default:
		return c.EncodeAuto(bitmap, quality)
	}
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
