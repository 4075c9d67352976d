package host

// Color is the color value the host passes to OnClearColor. Channels may
// be supplied as 0..255 integers or 0..1 floats; Normalize reduces either
// form to the normalized float quadruple the wire protocol expects.
type Color struct {
	R, G, B, A     int     // 0..255, used when Float is false
	Rf, Gf, Bf, Af float32 // 0..1, used when Float is true
	Float          bool
	HasAlpha       bool
}

// Normalize reduces c to normalized 0..1 channels. Alpha defaults to 1.0
// when the host didn't supply one.
func (c Color) Normalize() (r, g, b, a float32) {
	if c.Float {
		r, g, b = c.Rf, c.Gf, c.Bf
	} else {
		r = float32(c.R) / 255
		g = float32(c.G) / 255
		b = float32(c.B) / 255
	}

	a = 1.0
	if c.HasAlpha {
		if c.Float {
			a = c.Af
		} else {
			a = float32(c.A) / 255
		}
	}
	return r, g, b, a
}
