package driver

import "github.com/scenic-remote/driver/internal/protocol"

// globalTx computes the affine transform that letterboxes the design-space
// viewport (vw,vh) into the reported device size (dw,dh). A uniform scale
// is chosen as the smaller of the two axis ratios, and the opposite axis
// is centered.
func globalTx(dw, dh, vw, vh uint32) protocol.GlobalTx {
	sx := float32(dw) / float32(vw)
	sy := float32(dh) / float32(vh)
	s := sx
	if sy < sx {
		s = sy
	}
	tx := (float32(dw) - float32(vw)*s) / 2
	ty := (float32(dh) - float32(vh)*s) / 2

	return protocol.GlobalTx{A: s, B: 0, C: 0, D: s, E: tx, F: ty}
}
