package protocol

import (
	"encoding/binary"
	"math"
)

// Command codes (driver -> renderer).
const (
	CmdPutScript    uint8 = 0x01
	CmdDelScript    uint8 = 0x02
	CmdReset        uint8 = 0x03
	CmdGlobalTx     uint8 = 0x04
	CmdCursorTx     uint8 = 0x05
	CmdRender       uint8 = 0x06
	CmdClearColor   uint8 = 0x08
	CmdRequestInput uint8 = 0x0A
	CmdQuit         uint8 = 0x20
	CmdPutFont      uint8 = 0x40
	CmdPutImage     uint8 = 0x41
)

// Command is anything that can be encoded into a complete wire frame.
type Command interface {
	// Encode returns the complete framed bytes (header + payload).
	Encode() []byte
}

func putFloat32(buf []byte, off int, v float32) {
	binary.BigEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

func putUint32(buf []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(buf[off:off+4], v)
}

// PutScript pushes (or replaces) a script's serialized bytes under id.
type PutScript struct {
	ID     []byte
	Script []byte
}

func (c PutScript) Encode() []byte {
	payload := make([]byte, 4+len(c.ID)+len(c.Script))
	putUint32(payload, 0, uint32(len(c.ID)))
	n := copy(payload[4:], c.ID)
	copy(payload[4+n:], c.Script)
	return EncodeFrame(CmdPutScript, payload)
}

// DelScript removes a previously pushed script.
type DelScript struct {
	ID []byte
}

func (c DelScript) Encode() []byte {
	return EncodeFrame(CmdDelScript, c.ID)
}

// Reset clears the renderer's scene entirely.
type Reset struct{}

func (c Reset) Encode() []byte {
	return EncodeFrame(CmdReset, nil)
}

// affine6 is the shared payload shape for GlobalTx and CursorTx: six f32
// fields forming a 2x3 affine transform.
type affine6 struct{ A, B, C, D, E, F float32 }

func (t affine6) encode(typ uint8) []byte {
	payload := make([]byte, 24)
	putFloat32(payload, 0, t.A)
	putFloat32(payload, 4, t.B)
	putFloat32(payload, 8, t.C)
	putFloat32(payload, 12, t.D)
	putFloat32(payload, 16, t.E)
	putFloat32(payload, 20, t.F)
	return EncodeFrame(typ, payload)
}

// GlobalTx sets the viewport-wide affine transform (see GLOBAL_TX).
type GlobalTx struct{ A, B, C, D, E, F float32 }

func (c GlobalTx) Encode() []byte { return affine6(c).encode(CmdGlobalTx) }

// CursorTx sets the cursor-layer affine transform.
type CursorTx struct{ A, B, C, D, E, F float32 }

func (c CursorTx) Encode() []byte { return affine6(c).encode(CmdCursorTx) }

// Render requests the renderer draw the current scene.
type Render struct{}

func (c Render) Encode() []byte {
	return EncodeFrame(CmdRender, nil)
}

// ClearColor sets the background clear color, channels normalized 0..1.
type ClearColor struct{ R, G, B, A float32 }

func (c ClearColor) Encode() []byte {
	payload := make([]byte, 16)
	putFloat32(payload, 0, c.R)
	putFloat32(payload, 4, c.G)
	putFloat32(payload, 8, c.B)
	putFloat32(payload, 12, c.A)
	return EncodeFrame(CmdClearColor, payload)
}

// RequestInput asks the renderer to begin reporting the given input classes.
type RequestInput struct{ Flags uint32 }

func (c RequestInput) Encode() []byte {
	payload := make([]byte, 4)
	putUint32(payload, 0, c.Flags)
	return EncodeFrame(CmdRequestInput, payload)
}

// Quit tells the renderer to terminate.
type Quit struct{}

func (c Quit) Encode() []byte {
	return EncodeFrame(CmdQuit, nil)
}

// PutFont uploads a font asset under a symbolic name.
type PutFont struct {
	Name []byte
	Data []byte
}

func (c PutFont) Encode() []byte {
	payload := make([]byte, 4+len(c.Name)+len(c.Data))
	putUint32(payload, 0, uint32(len(c.Name)))
	n := copy(payload[4:], c.Name)
	copy(payload[4+n:], c.Data)
	return EncodeFrame(CmdPutFont, payload)
}

// ImageFormat is the wire enum identifying a PutImage payload's pixel layout.
type ImageFormat uint32

const (
	ImageEncoded ImageFormat = 0
	ImageGray    ImageFormat = 1
	ImageGrayA   ImageFormat = 2
	ImageRGB     ImageFormat = 3
	ImageRGBA    ImageFormat = 4
)

// ImageFormatFromName maps a symbolic format name to its wire enum,
// defaulting unrecognized names to Encoded.
func ImageFormatFromName(name string) ImageFormat {
	switch name {
	case "g", "gray", "grey":
		return ImageGray
	case "ga", "gray_alpha", "grey_alpha":
		return ImageGrayA
	case "rgb":
		return ImageRGB
	case "rgba":
		return ImageRGBA
	default:
		return ImageEncoded
	}
}

// PutImage uploads an image asset. Payload field order is fixed by the
// protocol: id_len, data_len, width, height, format, id, data.
type PutImage struct {
	ID     []byte
	Format ImageFormat
	Width  uint32
	Height uint32
	Data   []byte
}

func (c PutImage) Encode() []byte {
	payload := make([]byte, 20+len(c.ID)+len(c.Data))
	putUint32(payload, 0, uint32(len(c.ID)))
	putUint32(payload, 4, uint32(len(c.Data)))
	putUint32(payload, 8, c.Width)
	putUint32(payload, 12, c.Height)
	putUint32(payload, 16, uint32(c.Format))
	n := copy(payload[20:], c.ID)
	copy(payload[20+n:], c.Data)
	return EncodeFrame(CmdPutImage, payload)
}
