package screencap

import (
	"image"
	"time"
)

// TestPatternSource is a ScreenSource that never touches a real
// display: it renders a gradient-plus-grid test image with a moving
// dot, for deployments that have not wired a concrete capture
// backend. DesktopSize is fixed at construction.
type TestPatternSource struct {
	width, height int
}

// NewTestPatternSource returns a TestPatternSource for a desktop of
// the given size.
func NewTestPatternSource(width, height int) *TestPatternSource {
	return &TestPatternSource{width: width, height: height}
}

func (s *TestPatternSource) DesktopSize() (int, int) { return s.width, s.height }

func (s *TestPatternSource) CaptureFull() (image.Image, bool) {
	return s.render(), true
}

func (s *TestPatternSource) CaptureRegion(r Rect) (image.Image, bool) {
	if !r.Valid(s.width, s.height) {
		return nil, false
	}
	full := s.render()
	return full.SubImage(image.Rect(r.Left, r.Top, r.Right, r.Bottom)), true
}

// render draws the pattern directly into a pixel buffer rather than
// per-pixel Set calls.
func (s *TestPatternSource) render() *image.RGBA {
	width, height := s.width, s.height
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	pix := img.Pix
	stride := img.Stride

	for y := 0; y < height; y++ {
		g := uint8(50 + (y * 100 / height))
		off := y * stride
		for x := 0; x < width; x++ {
			i := off + x*4
			pix[i+0] = uint8(50 + (x * 100 / width))
			pix[i+1] = g
			pix[i+2] = 100
			pix[i+3] = 255
		}
	}

	for x := 0; x < width; x += 50 {
		for y := 0; y < height; y++ {
			i := y*stride + x*4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = 255, 255, 255, 100
		}
	}
	for y := 0; y < height; y += 50 {
		off := y * stride
		for x := 0; x < width; x++ {
			i := off + x*4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = 255, 255, 255, 100
		}
	}

	t := time.Now().Second()
	cx := (t * width) / 60
	for dy := -5; dy <= 5; dy++ {
		for dx := -5; dx <= 5; dx++ {
			if dx*dx+dy*dy <= 25 {
				px, py := cx+dx, height/2+dy
				if px >= 0 && px < width && py >= 0 && py < height {
					i := py*stride + px*4
					pix[i], pix[i+1], pix[i+2], pix[i+3] = 255, 100, 100, 255
				}
			}
		}
	}

	return img
}
