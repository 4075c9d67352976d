package host

// Modifier is one held modifier key, decoded from the wire's mods bitmask.
type Modifier int

const (
	ModShift Modifier = iota
	ModCtrl
	ModAlt
	ModMeta
	ModCapsLock
	ModNumLock
)

// modifierBits maps each wire bit to the modifier tag it represents.
var modifierBits = []struct {
	bit uint32
	mod Modifier
}{
	{0x01, ModShift},
	{0x02, ModCtrl},
	{0x04, ModAlt},
	{0x08, ModMeta},
	{0x10, ModCapsLock},
	{0x20, ModNumLock},
}

// DecodeMods expands a wire mods bitmask into the set of held modifiers.
func DecodeMods(bits uint32) []Modifier {
	var mods []Modifier
	for _, m := range modifierBits {
		if bits&m.bit != 0 {
			mods = append(mods, m.mod)
		}
	}
	return mods
}

// KeyAction is the host-facing tag for a key transition.
type KeyAction int

const (
	KeyActionRelease KeyAction = iota
	KeyActionPress
	KeyActionRepeat
)

// DecodeKeyAction maps the wire's key action integer to a KeyAction tag,
// defaulting to press for any value outside {0,1,2}.
func DecodeKeyAction(wire int32) KeyAction {
	switch wire {
	case 0:
		return KeyActionRelease
	case 2:
		return KeyActionRepeat
	default:
		return KeyActionPress
	}
}

// ButtonCode names the well-known mouse buttons; any other wire value
// passes through unchanged.
type ButtonCode uint32

const (
	ButtonLeft   ButtonCode = 0
	ButtonRight  ButtonCode = 1
	ButtonMiddle ButtonCode = 2
)

// DecodeButton passes unrecognized wire button codes through unchanged;
// 0/1/2 map onto the named left/right/middle constants (a no-op, since
// they share the same numeric values — the mapping exists to document
// the contract).
func DecodeButton(wire uint32) ButtonCode {
	return ButtonCode(wire)
}

// InputSink is the host-framework surface the driver engine translates
// renderer events onto. The engine never blocks delivering to it —
// implementations are expected to enqueue and return quickly.
type InputSink interface {
	Reshape(width, height uint32)
	CursorButton(button ButtonCode, pressed bool, mods []Modifier, x, y float32)
	CursorPos(x, y float32)
	Key(key, scancode uint32, action KeyAction, mods []Modifier)
	Codepoint(codepoint uint32, mods []Modifier)
	Scroll(xOff, yOff, x, y float32)
}
