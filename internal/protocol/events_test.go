package protocol

import "testing"

func TestDecodeEventReshape(t *testing.T) {
	payload := make([]byte, 8)
	putUint32(payload, 0, 1920)
	putUint32(payload, 4, 1080)

	evt := DecodeEvent(EvtReshape, payload)
	if evt.Type != EvtReshape {
		t.Fatalf("Type = %d, want %d", evt.Type, EvtReshape)
	}
	if evt.Reshape.Width != 1920 || evt.Reshape.Height != 1080 {
		t.Errorf("Reshape = %+v, want {1920 1080}", evt.Reshape)
	}
}

func TestDecodeEventReadyEmptyPayload(t *testing.T) {
	evt := DecodeEvent(EvtReady, nil)
	if evt.Type != EvtReady {
		t.Fatalf("Type = %d, want %d", evt.Type, EvtReady)
	}
}

func TestDecodeEventMalformedLengthFallsBackToUnknown(t *testing.T) {
	// Reshape expects 8 bytes; feed 3.
	evt := DecodeEvent(EvtReshape, []byte{1, 2, 3})
	if evt.Type != EvtReshape {
		t.Fatalf("Type = %d, want %d", evt.Type, EvtReshape)
	}
	if evt.Unknown.RawType != EvtReshape {
		t.Errorf("expected fallback to Unknown carrying RawType %d, got %+v", EvtReshape, evt.Unknown)
	}
	if len(evt.Unknown.Payload) != 3 {
		t.Errorf("Unknown.Payload length = %d, want 3", len(evt.Unknown.Payload))
	}
}

func TestDecodeEventUnrecognizedType(t *testing.T) {
	evt := DecodeEvent(0xFF, []byte{9, 9})
	if evt.Unknown.RawType != 0xFF {
		t.Errorf("RawType = %d, want 0xFF", evt.Unknown.RawType)
	}
}

func TestDecodeEventLogMessage(t *testing.T) {
	evt := DecodeEvent(EvtLogWarn, []byte("low battery"))
	if evt.Log.Message != "low battery" {
		t.Errorf("Log.Message = %q, want %q", evt.Log.Message, "low battery")
	}
}

func TestDecodeEventTouch(t *testing.T) {
	payload := make([]byte, 9)
	payload[0] = TouchDown
	putFloat32(payload, 1, 12.5)
	putFloat32(payload, 5, 30.0)

	evt := DecodeEvent(EvtTouch, payload)
	if evt.Touch.Action != TouchDown {
		t.Errorf("Action = %d, want %d", evt.Touch.Action, TouchDown)
	}
	if evt.Touch.X != 12.5 || evt.Touch.Y != 30.0 {
		t.Errorf("Touch = %+v, want {X:12.5 Y:30}", evt.Touch)
	}
}

func TestDecodeEventKey(t *testing.T) {
	payload := make([]byte, 16)
	putUint32(payload, 0, 65)
	putUint32(payload, 4, 30)
	putUint32(payload, 8, uint32(KeyPress))
	putUint32(payload, 12, 0x01)

	evt := DecodeEvent(EvtKey, payload)
	if evt.Key.Key != 65 || evt.Key.Scancode != 30 || evt.Key.Action != KeyPress || evt.Key.Mods != 0x01 {
		t.Errorf("Key = %+v", evt.Key)
	}
}
