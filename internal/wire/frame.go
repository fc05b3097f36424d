// Package wire implements the updates-channel binary framing: the two
// message shapes (text message, image frame) that the bridge writes to
// the browser-facing gateway, and nothing else. Every integer on the
// wire is little-endian, 32 bits wide.
package wire

// Format identifies the payload encoding of an image frame.
type Format uint32

const (
	FormatCursor Format = iota // CUR: PNG payload representing a composited cursor
	FormatPNG
	FormatJPEG
	FormatWebP
)

func (f Format) String() string {
	switch f {
	case FormatCursor:
		return "cur"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// imageTag is the constant discriminator value written where a text
// message would carry its length prefix; see doc.go for the wire
// ambiguity this implies and how this package resolves it for tests.
const imageTag uint32 = 0

// headerFields is the number of fixed u32 fields following total_len
// in an image frame: tag, idx, posX, posY, width, height, format,
// quality, fullscreen — 9 fields, 36 bytes.
const headerFields = 9
const headerBytes = headerFields * 4

// ImageFrame is one encoded capture (region, full-screen, or cursor)
// with the metadata the browser needs to place and decode it.
type ImageFrame struct {
	Idx        int32
	PosX       uint32
	PosY       uint32
	Width      uint32
	Height     uint32
	Format     Format
	Quality    uint32
	Fullscreen bool
	Payload    []byte
}

// TotalLen returns the value written in the frame's total_len field:
// 36 fixed bytes plus the payload length.
func (f ImageFrame) TotalLen() uint32 {
	return uint32(headerBytes) + uint32(len(f.Payload))
}
