package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrShortBuffer is returned when a buffer ends before a declared
	// length or the fixed header is fully present.
	ErrShortBuffer = errors.New("wire: buffer shorter than declared length")
	// ErrNotImageFrame is returned by DecodeImage when the tag field
	// is not 0.
	ErrNotImageFrame = errors.New("wire: tag field is not an image frame tag")
)

// DecodeText reads a text message from the front of buf. It returns
// the decoded string and the number of bytes consumed.
func DecodeText(buf []byte) (string, int, error) {
	if len(buf) < 4 {
		return "", 0, ErrShortBuffer
	}
	n := binary.LittleEndian.Uint32(buf[0:4])
	end := 4 + int(n)
	if end > len(buf) {
		return "", 0, ErrShortBuffer
	}
	return string(buf[4:end]), end, nil
}

// DecodeImage reads an image frame from the front of buf. It returns
// the decoded frame and the number of bytes consumed.
func DecodeImage(buf []byte) (ImageFrame, int, error) {
	if len(buf) < 4+headerBytes {
		return ImageFrame{}, 0, ErrShortBuffer
	}
	le := binary.LittleEndian
	total := le.Uint32(buf[0:4])
	end := 4 + int(total)
	if end > len(buf) {
		return ImageFrame{}, 0, ErrShortBuffer
	}
	tag := le.Uint32(buf[4:8])
	if tag != imageTag {
		return ImageFrame{}, 0, fmt.Errorf("%w: got %d", ErrNotImageFrame, tag)
	}
	f := ImageFrame{
		Idx:        int32(le.Uint32(buf[8:12])),
		PosX:       le.Uint32(buf[12:16]),
		PosY:       le.Uint32(buf[16:20]),
		Width:      le.Uint32(buf[20:24]),
		Height:     le.Uint32(buf[24:28]),
		Format:     Format(le.Uint32(buf[28:32])),
		Quality:    le.Uint32(buf[32:36]),
		Fullscreen: le.Uint32(buf[36:40]) != 0,
	}
	f.Payload = append([]byte(nil), buf[40:end]...)
	return f, end, nil
}

// Sniff reports whether the message at the front of buf looks like an
// image frame, by checking whether the u32 at the tag offset is 0.
// It is a best-effort discriminator for tests that mix message kinds
// in one buffer; production code always knows which kind it wrote.
func Sniff(buf []byte) bool {
	if len(buf) < 8 {
		return false
	}
	return binary.LittleEndian.Uint32(buf[4:8]) == imageTag
}
