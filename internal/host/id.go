// Package host declares the narrow interfaces the driver engine calls out
// to the scene-graph host framework: script/asset lookup and input
// delivery. The host framework itself is an external collaborator, never
// imported here — these are the only points of contact.
package host

import "fmt"

// ID is a script or asset identifier. It may arrive from the host as a
// byte string, a symbolic name, an integer, or a rune sequence; all forms
// coerce to the same UTF-8 byte representation used on the wire. Empty
// IDs are permitted.
type ID struct {
	kind  idKind
	bytes []byte
	name  string
	num   int64
	runes []rune
}

type idKind int

const (
	idBytes idKind = iota
	idName
	idInt
	idRunes
)

// NewIDFromBytes builds an ID from a raw byte string.
func NewIDFromBytes(b []byte) ID { return ID{kind: idBytes, bytes: b} }

// NewIDFromName builds an ID from a symbolic/string name.
func NewIDFromName(s string) ID { return ID{kind: idName, name: s} }

// NewIDFromInt builds an ID from an integer.
func NewIDFromInt(n int64) ID { return ID{kind: idInt, num: n} }

// NewIDFromRunes builds an ID from a character sequence.
func NewIDFromRunes(r []rune) ID { return ID{kind: idRunes, runes: r} }

// Bytes coerces the ID to its UTF-8 textual wire representation.
func (id ID) Bytes() []byte {
	switch id.kind {
	case idBytes:
		return id.bytes
	case idName:
		return []byte(id.name)
	case idInt:
		return []byte(fmt.Sprintf("%d", id.num))
	case idRunes:
		return []byte(string(id.runes))
	default:
		return nil
	}
}

// String renders the ID for logging.
func (id ID) String() string {
	return string(id.Bytes())
}
