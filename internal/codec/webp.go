package codec

import (
	"image"

	"go.uber.org/zap"
)

// WebPEncoder produces a WebP payload from a bitmap at the given
// quality, 0..100. It is injected rather than implemented directly
// because no WebP encoder is available among the libraries this
// project draws on; production wiring supplies a real one if the
// deployment has one, and FallbackWebPEncoder otherwise.
type WebPEncoder interface {
	Encode(bitmap image.Image, quality int) ([]byte, error)
}

// FallbackWebPEncoder downgrades every WebP request to PNG and logs
// the substitution once. It keeps the AUTO/quality/quantity rules
// intact for deployments that never wired a real WebP encoder.
type FallbackWebPEncoder struct {
	Logger *zap.Logger

	warned bool
}

// Encode implements WebPEncoder by delegating to image/png.
func (f *FallbackWebPEncoder) Encode(bitmap image.Image, quality int) ([]byte, error) {
	if !f.warned {
		f.warned = true
		if f.Logger != nil {
			f.Logger.Warn("no webp encoder configured, falling back to png")
		}
	}
	c := New(nil)
	return c.EncodePNG(bitmap)
}
