package screencap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResizeProducesRequestedDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}

	out := Resize(src, 50, 40)

	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 40, out.Bounds().Dy())
}

func TestResizeUpscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	out := Resize(src, 20, 30)

	assert.Equal(t, 20, out.Bounds().Dx())
	assert.Equal(t, 30, out.Bounds().Dy())
}
