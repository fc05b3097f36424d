// Package screencap defines the screen source (C3): the abstracted
// bitmap-acquisition primitive and the scaling transform applied to
// captures and rectangles alike.
package screencap

import "image"

// Rect is a half-open pixel rectangle in desktop coordinates: Left and
// Top are inclusive, Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Valid reports whether the rectangle has non-inverted coordinates
// and lies within the given desktop bounds.
func (r Rect) Valid(desktopW, desktopH int) bool {
	if r.Left > r.Right || r.Top > r.Bottom {
		return false
	}
	if r.Left < 0 || r.Top < 0 || r.Right > desktopW || r.Bottom > desktopH {
		return false
	}
	return true
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// ScreenSource is the abstracted bitmap-acquisition primitive: how a
// bitmap is obtained from the remote desktop's primary drawing
// surface. The concrete implementation (GDI, X11, a headless
// framebuffer) is an external collaborator injected at session
// construction.
type ScreenSource interface {
	// CaptureFull returns the full desktop bitmap at native desktop
	// resolution. ok is false when there is no primary drawing surface.
	// Scaling to client dimensions is the caller's concern (Resize).
	CaptureFull() (bmp image.Image, ok bool)
	// CaptureRegion returns the bitmap for the given desktop-space
	// rectangle at native resolution. ok is false when there is no
	// primary drawing surface.
	CaptureRegion(r Rect) (bmp image.Image, ok bool)
	// DesktopSize reports the current desktop dimensions.
	DesktopSize() (w, h int)
}

// ScaleRect maps a desktop-space rectangle into client coordinates
// using the symmetric transform x' = x * clientW / desktopW (and the
// equivalent for y).
func ScaleRect(r Rect, desktopW, desktopH, clientW, clientH int) Rect {
	return Rect{
		Left:   scaleCoord(r.Left, desktopW, clientW),
		Top:    scaleCoord(r.Top, desktopH, clientH),
		Right:  scaleCoord(r.Right, desktopW, clientW),
		Bottom: scaleCoord(r.Bottom, desktopH, clientH),
	}
}

func scaleCoord(v, from, to int) int {
	if from == 0 {
		return 0
	}
	return v * to / from
}
