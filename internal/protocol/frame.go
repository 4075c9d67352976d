// Package protocol implements the scenic-remote wire protocol: frame
// header encoding, typed command encoders, and the event decoder table.
package protocol

import (
	"encoding/binary"
	"fmt"
)

// FrameHeaderSize is the fixed size of a frame header in bytes.
const FrameHeaderSize = 5

// MaxFrameSize bounds the payload length accepted by the frame extractor.
const MaxFrameSize = 16 << 20 // 16 MiB

// EncodeFrame writes the 5-byte header followed by payload. length equals
// len(payload); no allocation beyond the returned buffer.
func EncodeFrame(typ uint8, payload []byte) []byte {
	buf := make([]byte, FrameHeaderSize+len(payload))
	buf[0] = typ
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(payload)))
	copy(buf[5:], payload)
	return buf
}

// Header is a decoded frame header.
type Header struct {
	Type   uint8
	Length uint32
}

// ErrIncompleteHeader signals fewer than FrameHeaderSize bytes are present.
var ErrIncompleteHeader = fmt.Errorf("protocol: incomplete frame header")

// DecodeHeader parses the fixed 5-byte header from the front of buf and
// returns the header plus the remainder of buf (the payload, possibly
// including extra trailing bytes from subsequent frames).
func DecodeHeader(buf []byte) (Header, []byte, error) {
	if len(buf) < FrameHeaderSize {
		return Header{}, nil, ErrIncompleteHeader
	}
	h := Header{
		Type:   buf[0],
		Length: binary.BigEndian.Uint32(buf[1:5]),
	}
	return h, buf[FrameHeaderSize:], nil
}
