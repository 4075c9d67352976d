package protocol

import (
	"encoding/binary"
	"math"
)

// Event codes (renderer -> driver).
const (
	EvtStats       uint8 = 0x01
	EvtReshape     uint8 = 0x05
	EvtReady       uint8 = 0x06
	EvtTouch       uint8 = 0x08
	EvtKey         uint8 = 0x0A
	EvtCodepoint   uint8 = 0x0B
	EvtCursorPos   uint8 = 0x0C
	EvtMouseButton uint8 = 0x0D
	EvtScroll      uint8 = 0x0E
	EvtCursorEnter uint8 = 0x0F
	EvtLogInfo     uint8 = 0xA0
	EvtLogWarn     uint8 = 0xA1
	EvtLogError    uint8 = 0xA2
)

// Touch actions (Touch.Action).
const (
	TouchDown uint8 = 0
	TouchUp   uint8 = 1
	TouchMove uint8 = 2
)

// Key actions (Key.Action).
const (
	KeyRelease int32 = 0
	KeyPress   int32 = 1
	KeyRepeat  int32 = 2
)

// Event is the sum type of everything a renderer can report upward.
// Type always holds the wire type code. For a recognized code with a
// well-formed payload, the field matching Type is set. For an unrecognized
// code, or a payload of the wrong length, Unknown is set instead (RawType
// equal to the code) and the typed field is left zero.
type Event struct {
	Type uint8

	Stats       Stats
	Reshape     Reshape
	Touch       Touch
	Key         Key
	Codepoint   Codepoint
	CursorPos   CursorPos
	MouseButton MouseButton
	Scroll      Scroll
	CursorEnter CursorEnter
	Log         Log
	Unknown     Unknown
}

type Stats struct{ BytesReceived uint64 }
type Reshape struct{ Width, Height uint32 }
type Touch struct {
	Action uint8
	X, Y   float32
}
type Key struct {
	Key, Scancode uint32
	Action        int32
	Mods          uint32
}
type Codepoint struct {
	Codepoint, Mods uint32
}
type CursorPos struct{ X, Y float32 }
type MouseButton struct {
	Button, Action, Mods uint32
	X, Y                 float32
}
type Scroll struct{ XOff, YOff, X, Y float32 }
type CursorEnter struct{ Entered uint8 }
type Log struct{ Message string }
type Unknown struct {
	RawType uint8
	Payload []byte
}

func getFloat32(b []byte, off int) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b[off : off+4]))
}

func getUint32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

func getUint64(b []byte, off int) uint64 {
	return binary.BigEndian.Uint64(b[off : off+8])
}

// DecodeEvent decodes a single event payload for the given type code. A
// payload whose length doesn't match the type's expected fixed size, or a
// type code this codec doesn't recognize, decodes to Unknown rather than
// returning an error — the codec never fails on decode.
func DecodeEvent(typ uint8, payload []byte) Event {
	switch typ {
	case EvtStats:
		if len(payload) != 8 {
			break
		}
		return Event{Type: typ, Stats: Stats{BytesReceived: getUint64(payload, 0)}}
	case EvtReshape:
		if len(payload) != 8 {
			break
		}
		return Event{Type: typ, Reshape: Reshape{
			Width:  getUint32(payload, 0),
			Height: getUint32(payload, 4),
		}}
	case EvtReady:
		if len(payload) != 0 {
			break
		}
		return Event{Type: typ}
	case EvtTouch:
		if len(payload) != 9 {
			break
		}
		return Event{Type: typ, Touch: Touch{
			Action: payload[0],
			X:      getFloat32(payload, 1),
			Y:      getFloat32(payload, 5),
		}}
	case EvtKey:
		if len(payload) != 16 {
			break
		}
		return Event{Type: typ, Key: Key{
			Key:      getUint32(payload, 0),
			Scancode: getUint32(payload, 4),
			Action:   int32(getUint32(payload, 8)),
			Mods:     getUint32(payload, 12),
		}}
	case EvtCodepoint:
		if len(payload) != 8 {
			break
		}
		return Event{Type: typ, Codepoint: Codepoint{
			Codepoint: getUint32(payload, 0),
			Mods:      getUint32(payload, 4),
		}}
	case EvtCursorPos:
		if len(payload) != 8 {
			break
		}
		return Event{Type: typ, CursorPos: CursorPos{
			X: getFloat32(payload, 0),
			Y: getFloat32(payload, 4),
		}}
	case EvtMouseButton:
		if len(payload) != 20 {
			break
		}
		return Event{Type: typ, MouseButton: MouseButton{
			Button: getUint32(payload, 0),
			Action: getUint32(payload, 4),
			Mods:   getUint32(payload, 8),
			X:      getFloat32(payload, 12),
			Y:      getFloat32(payload, 16),
		}}
	case EvtScroll:
		if len(payload) != 16 {
			break
		}
		return Event{Type: typ, Scroll: Scroll{
			XOff: getFloat32(payload, 0),
			YOff: getFloat32(payload, 4),
			X:    getFloat32(payload, 8),
			Y:    getFloat32(payload, 12),
		}}
	case EvtCursorEnter:
		if len(payload) != 1 {
			break
		}
		return Event{Type: typ, CursorEnter: CursorEnter{Entered: payload[0]}}
	case EvtLogInfo, EvtLogWarn, EvtLogError:
		return Event{Type: typ, Log: Log{Message: string(payload)}}
	}

	return Event{Type: typ, Unknown: Unknown{RawType: typ, Payload: payload}}
}
