package screencap

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize produces a high-quality downsampled (or upsampled) copy of
// img at exactly w x h, the "halftone-style stretch" the display
// scaling policy applies to captured pixels once SCA is active and
// the client's dimensions differ from the desktop's.
func Resize(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
