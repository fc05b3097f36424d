package codec

import (
	"image"
	"image/color"
)

const (
	maskBlue  = 0x0000FF
	pureYellow = 0xFFFF00
)

// transparentWhite is fully transparent but keeps white RGB channels,
// not black, so partial-alpha blending on the browser side never
// tints the cleared area.
var transparentWhite = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x00}
var opaqueBlack = color.RGBA{R: 0, G: 0, B: 0, A: 0xFF}

// Cursor holds the pointer hot-spot alongside its composited bitmap.
type Cursor struct {
	Bitmap *image.RGBA
	HotX   int
	HotY   int
	Empty  bool
}

// CompositeCursor post-processes a cursor already rendered by the RDP
// facade onto a solid blue mask: blue becomes fully transparent white,
// pure yellow becomes opaque black (some cursors render yellow on this
// path and need remapping), and the result is flagged empty if no
// opaque black pixel survives.
func CompositeCursor(masked *image.RGBA, hotX, hotY int) Cursor {
	out := image.NewRGBA(masked.Bounds())
	anyBlack := false

	b := masked.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := masked.RGBAAt(x, y)
			switch {
			case isColor(px, maskBlue):
				out.SetRGBA(x, y, transparentWhite)
			case isColor(px, pureYellow):
				out.SetRGBA(x, y, opaqueBlack)
				anyBlack = true
			default:
				out.SetRGBA(x, y, px)
				if px.A != 0 && px.R == 0 && px.G == 0 && px.B == 0 {
					anyBlack = true
				}
			}
		}
	}

	return Cursor{
		Bitmap: out,
		HotX:   hotX,
		HotY:   hotY,
		Empty:  !anyBlack,
	}
}

func isColor(px color.RGBA, rgb uint32) bool {
	r := uint32(px.R)
	g := uint32(px.G)
	bl := uint32(px.B)
	return r<<16|g<<8|bl == rgb
}
