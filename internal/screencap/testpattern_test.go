package screencap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestPatternSourceCaptureFull(t *testing.T) {
	s := NewTestPatternSource(800, 600)
	bmp, ok := s.CaptureFull()
	assert.True(t, ok)
	assert.Equal(t, 800, bmp.Bounds().Dx())
	assert.Equal(t, 600, bmp.Bounds().Dy())
}

func TestTestPatternSourceCaptureRegionRejectsOutOfBounds(t *testing.T) {
	s := NewTestPatternSource(800, 600)
	_, ok := s.CaptureRegion(Rect{Left: 0, Top: 0, Right: 2000, Bottom: 100})
	assert.False(t, ok)
}

func TestTestPatternSourceCaptureRegionInBounds(t *testing.T) {
	s := NewTestPatternSource(800, 600)
	bmp, ok := s.CaptureRegion(Rect{Left: 10, Top: 10, Right: 110, Bottom: 110})
	assert.True(t, ok)
	assert.Equal(t, 100, bmp.Bounds().Dx())
	assert.Equal(t, 100, bmp.Bounds().Dy())
}

func TestTestPatternSourceDesktopSize(t *testing.T) {
	s := NewTestPatternSource(1024, 768)
	w, h := s.DesktopSize()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
}
