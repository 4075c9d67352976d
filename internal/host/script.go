package host

import "github.com/scenic-remote/driver/internal/protocol"

// AssetKind distinguishes the three asset flavors a script may reference.
type AssetKind int

const (
	AssetFont AssetKind = iota
	AssetImage
	AssetStream
)

// AssetRef is a single asset dependency declared by a script.
type AssetRef struct {
	Kind AssetKind `msgpack:"kind"`
	ID   string    `msgpack:"id"`
}

// Primitive is one drawing instruction in a script's opaque body. The
// engine never interprets primitives beyond the asset references attached
// to the script as a whole — this type exists only so Script has a
// concrete, msgpack-encodable shape instead of an empty stub.
type Primitive struct {
	Op   string                 `msgpack:"op"`
	Args map[string]interface{} `msgpack:"args,omitempty"`
}

// Script is the host's in-memory representation of one scene-graph node.
// Its wire form (the bytes carried in a PutScript command) is produced by
// msgpack-encoding this struct; the engine treats that encoding as opaque.
type Script struct {
	Primitives []Primitive `msgpack:"primitives"`
	Assets     []AssetRef  `msgpack:"-"`
}

// Marshal produces the opaque byte form sent on the wire in PutScript.
func (s Script) Marshal() ([]byte, error) {
	return protocol.MarshalMsgpack(s)
}
