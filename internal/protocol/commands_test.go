package protocol

import (
	"bytes"
	"testing"
)

func TestPutScriptEncode(t *testing.T) {
	c := PutScript{ID: []byte("abc"), Script: []byte{0xde, 0xad}}
	frame := c.Encode()

	hdr, rest, err := DecodeHeader(frame)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if hdr.Type != CmdPutScript {
		t.Fatalf("Type = %d, want %d", hdr.Type, CmdPutScript)
	}

	wantPayload := make([]byte, 4+len(c.ID)+len(c.Script))
	wantPayload[3] = byte(len(c.ID))
	copy(wantPayload[4:], c.ID)
	copy(wantPayload[4+len(c.ID):], c.Script)

	if !bytes.Equal(rest[:hdr.Length], wantPayload) {
		t.Errorf("payload = %v, want %v", rest[:hdr.Length], wantPayload)
	}
}

func TestDelScriptEncode(t *testing.T) {
	c := DelScript{ID: []byte("xyz")}
	frame := c.Encode()
	hdr, rest, _ := DecodeHeader(frame)
	if hdr.Type != CmdDelScript {
		t.Fatalf("Type = %d, want %d", hdr.Type, CmdDelScript)
	}
	if !bytes.Equal(rest[:hdr.Length], c.ID) {
		t.Errorf("payload = %v, want %v", rest[:hdr.Length], c.ID)
	}
}

func TestGlobalTxEncode(t *testing.T) {
	c := GlobalTx{A: 1, B: 0, C: 0, D: 1, E: 10, F: 20}
	frame := c.Encode()
	hdr, rest, _ := DecodeHeader(frame)
	if hdr.Type != CmdGlobalTx {
		t.Fatalf("Type = %d, want %d", hdr.Type, CmdGlobalTx)
	}
	if hdr.Length != 24 {
		t.Fatalf("Length = %d, want 24", hdr.Length)
	}
	if getFloat32(rest, 16) != 10 || getFloat32(rest, 20) != 20 {
		t.Errorf("E/F = %v/%v, want 10/20", getFloat32(rest, 16), getFloat32(rest, 20))
	}
}

func TestClearColorEncode(t *testing.T) {
	c := ClearColor{R: 1, G: 0.5, B: 0, A: 1}
	frame := c.Encode()
	hdr, rest, _ := DecodeHeader(frame)
	if hdr.Type != CmdClearColor || hdr.Length != 16 {
		t.Fatalf("unexpected header: %+v", hdr)
	}
	if getFloat32(rest, 4) != 0.5 {
		t.Errorf("G = %v, want 0.5", getFloat32(rest, 4))
	}
}

func TestPutImageFieldOrder(t *testing.T) {
	c := PutImage{
		ID:     []byte("img1"),
		Format: ImageRGBA,
		Width:  4,
		Height: 2,
		Data:   []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}
	frame := c.Encode()
	hdr, rest, _ := DecodeHeader(frame)
	if hdr.Type != CmdPutImage {
		t.Fatalf("Type = %d, want %d", hdr.Type, CmdPutImage)
	}

	if getUint32(rest, 0) != uint32(len(c.ID)) {
		t.Errorf("id_len = %d, want %d", getUint32(rest, 0), len(c.ID))
	}
	if getUint32(rest, 4) != uint32(len(c.Data)) {
		t.Errorf("data_len = %d, want %d", getUint32(rest, 4), len(c.Data))
	}
	if getUint32(rest, 8) != c.Width {
		t.Errorf("width = %d, want %d", getUint32(rest, 8), c.Width)
	}
	if getUint32(rest, 12) != c.Height {
		t.Errorf("height = %d, want %d", getUint32(rest, 12), c.Height)
	}
	if getUint32(rest, 16) != uint32(c.Format) {
		t.Errorf("format = %d, want %d", getUint32(rest, 16), c.Format)
	}
	gotID := rest[20 : 20+len(c.ID)]
	if !bytes.Equal(gotID, c.ID) {
		t.Errorf("id = %v, want %v", gotID, c.ID)
	}
	gotData := rest[20+len(c.ID) : 20+len(c.ID)+len(c.Data)]
	if !bytes.Equal(gotData, c.Data) {
		t.Errorf("data = %v, want %v", gotData, c.Data)
	}
}

func TestImageFormatFromName(t *testing.T) {
	tests := []struct {
		name string
		want ImageFormat
	}{
		{"gray", ImageGray},
		{"grey", ImageGray},
		{"gray_alpha", ImageGrayA},
		{"rgb", ImageRGB},
		{"rgba", ImageRGBA},
		{"jpeg", ImageEncoded},
		{"", ImageEncoded},
	}
	for _, tt := range tests {
		if got := ImageFormatFromName(tt.name); got != tt.want {
			t.Errorf("ImageFormatFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
