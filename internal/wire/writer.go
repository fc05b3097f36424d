package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer serializes text messages and image frames onto an io.Writer.
// Each Write* call issues exactly one Write to w so that a caller
// backed by internal/ipc.Channel puts the whole message on the wire
// in a single syscall.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w. w is typically an internal/ipc.Channel in
// production and a bytes.Buffer in tests.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteText writes a text message: [u32 len LE][utf8 bytes].
func (wr *Writer) WriteText(s string) error {
	buf := make([]byte, 4+len(s))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(s)))
	copy(buf[4:], s)
	n, err := wr.w.Write(buf)
	if err != nil {
		return fmt.Errorf("wire: write text message: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("wire: short write of text message: wrote %d of %d bytes", n, len(buf))
	}
	return nil
}

// WriteImage writes an image frame:
//
//	[u32 total_len][u32 tag=0][u32 idx][u32 pos_x][u32 pos_y]
//	[u32 width][u32 height][u32 format][u32 quality][u32 fullscreen][payload]
func (wr *Writer) WriteImage(f ImageFrame) error {
	total := f.TotalLen()
	buf := make([]byte, 4+total)

	le := binary.LittleEndian
	le.PutUint32(buf[0:4], total)
	le.PutUint32(buf[4:8], imageTag)
	le.PutUint32(buf[8:12], uint32(f.Idx))
	le.PutUint32(buf[12:16], f.PosX)
	le.PutUint32(buf[16:20], f.PosY)
	le.PutUint32(buf[20:24], f.Width)
	le.PutUint32(buf[24:28], f.Height)
	le.PutUint32(buf[28:32], uint32(f.Format))
	le.PutUint32(buf[32:36], f.Quality)
	le.PutUint32(buf[36:40], boolToU32(f.Fullscreen))
	copy(buf[40:], f.Payload)

	n, err := wr.w.Write(buf)
	if err != nil {
		return fmt.Errorf("wire: write image frame: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("wire: short write of image frame: wrote %d of %d bytes", n, len(buf))
	}
	return nil
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
