// Package ratectl implements the rate controller (C5): the
// quantity-based drop rule for region frames and the monotonic image
// index allocator shared by every frame kind.
package ratectl

import "sync/atomic"

// quantityDivisor maps the enumerated IPS quantities to a modulus:
// a frame is allowed through only when the running count is a
// multiple of the divisor. Any quantity not in this table (including
// 100) emits every frame.
var quantityDivisor = map[int]int{
	5:  20,
	10: 10,
	20: 5,
	25: 4,
	50: 2,
}

// Controller tracks the region-frame counter and the monotonic frame
// index. Both are atomic so concurrent capture callbacks (the RDP
// facade's own thread alongside the input reader issuing FSU) never
// race.
type Controller struct {
	imageCount atomic.Int32
	imageIdx   atomic.Int32
}

// New returns a Controller with both counters at zero.
func New() *Controller {
	return &Controller{}
}

// Allow increments the region-frame counter and reports whether this
// region frame should be emitted under the given quantity. It must
// only be called for region frames; full-screen and cursor frames
// bypass rate control entirely.
func (c *Controller) Allow(quantity int) bool {
	n := c.imageCount.Add(1)
	if n < 0 {
		// wrapped past the signed 31-bit range this counter is kept within
		c.imageCount.Store(0)
		n = 0
	}

	divisor, limited := quantityDivisor[quantity]
	if !limited {
		return true
	}
	return int(n)%divisor == 0
}

// NextIdx allocates the next monotonic frame index, wrapping to 0 on
// overflow of a signed 31-bit range as the wire format's idx field
// does.
func (c *Controller) NextIdx() int32 {
	n := c.imageIdx.Add(1)
	if n < 0 {
		c.imageIdx.Store(0)
		return 0
	}
	return n
}
