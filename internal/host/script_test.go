package host

import (
	"testing"

	"github.com/scenic-remote/driver/internal/protocol"
)

func TestScriptMarshalRoundTrips(t *testing.T) {
	s := Script{
		Primitives: []Primitive{
			{Op: "rect", Args: map[string]interface{}{"w": float64(10), "h": float64(20)}},
			{Op: "text"},
		},
		Assets: []AssetRef{{Kind: AssetFont, ID: "sans"}},
	}

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Script
	if err := protocol.UnmarshalMsgpack(data, &decoded); err != nil {
		t.Fatalf("UnmarshalMsgpack: %v", err)
	}

	if len(decoded.Primitives) != len(s.Primitives) {
		t.Fatalf("Primitives = %d, want %d", len(decoded.Primitives), len(s.Primitives))
	}
	for i, p := range s.Primitives {
		if decoded.Primitives[i].Op != p.Op {
			t.Errorf("Primitives[%d].Op = %q, want %q", i, decoded.Primitives[i].Op, p.Op)
		}
	}

	// Assets is tagged msgpack:"-" — it never crosses the wire, since the
	// renderer has no use for asset references once PutFont/PutImage have
	// already synced them.
	if len(decoded.Assets) != 0 {
		t.Fatalf("Assets = %v, want none (not part of the wire encoding)", decoded.Assets)
	}
}
