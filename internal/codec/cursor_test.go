package codec

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func maskBitmap(w, h int, fill color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	blue := color.RGBA{0, 0, 0xFF, 0xFF}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, blue)
		}
	}
	img.SetRGBA(w/2, h/2, fill)
	return img
}

func TestCompositeCursorBlueBecomesTransparent(t *testing.T) {
	bmp := maskBitmap(4, 4, color.RGBA{0, 0, 0xFF, 0xFF})
	cur := CompositeCursor(bmp, 0, 0)

	assert.Equal(t, transparentWhite, cur.Bitmap.RGBAAt(0, 0))
	assert.True(t, cur.Empty, "all-blue mask has no surviving opaque pixel")
}

func TestCompositeCursorYellowBecomesBlack(t *testing.T) {
	bmp := maskBitmap(4, 4, color.RGBA{0xFF, 0xFF, 0, 0xFF})
	cur := CompositeCursor(bmp, 1, 2)

	assert.Equal(t, opaqueBlack, cur.Bitmap.RGBAAt(2, 2))
	assert.False(t, cur.Empty)
	assert.Equal(t, 1, cur.HotX)
	assert.Equal(t, 2, cur.HotY)
}

func TestCompositeCursorPreservesOtherPixels(t *testing.T) {
	bmp := maskBitmap(4, 4, color.RGBA{10, 20, 30, 255})
	cur := CompositeCursor(bmp, 0, 0)

	assert.Equal(t, color.RGBA{10, 20, 30, 255}, cur.Bitmap.RGBAAt(2, 2))
}
