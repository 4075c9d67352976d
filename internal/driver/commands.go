package driver

import (
	"github.com/scenic-remote/driver/internal/host"
	"github.com/scenic-remote/driver/internal/protocol"
)

// OnResetScene clears the renderer's scene and the local media cache.
func (d *Driver) OnResetScene() {
	d.post(func() {
		d.sendCommand(protocol.Reset{})
		d.media.reset()
	})
}

// OnClearColor normalizes color and emits ClearColor.
func (d *Driver) OnClearColor(color host.Color) {
	d.post(func() {
		r, g, b, a := color.Normalize()
		d.sendCommand(protocol.ClearColor{R: r, G: g, B: b, A: a})
	})
}

// OnUpdateScripts fetches each id's current script from the host,
// ensures its declared media is synced, serializes it, and emits
// PutScript — followed by exactly one Render once every id is handled.
// The host is assumed to call this only with ids whose body actually
// changed; the driver does not diff script contents itself.
func (d *Driver) OnUpdateScripts(ids []host.ID) {
	d.post(func() {
		for _, id := range ids {
			script, ok := d.scene.Script(id)
			if !ok {
				continue
			}
			d.ensureMedia(script)

			bytes, err := script.Marshal()
			if err != nil {
				d.logger.Warn("driver: script serialization failed", "id", id.String(), "error", err)
				continue
			}
			d.sendCommand(protocol.PutScript{ID: id.Bytes(), Script: bytes})
		}
		d.sendCommand(protocol.Render{})
	})
}

// OnDelScripts emits DelScript for each id.
func (d *Driver) OnDelScripts(ids []host.ID) {
	d.post(func() {
		for _, id := range ids {
			d.sendCommand(protocol.DelScript{ID: id.Bytes()})
		}
	})
}

// OnRequestInput is a no-op: renderer input arrives unsolicited.
func (d *Driver) OnRequestInput(_ uint32) {}

// ensureMedia loads and pushes every asset a script declares that isn't
// already in the media cache. Missing or failing loads are silently
// skipped — the asset stays uncached so a later update that references
// it again will retry.
func (d *Driver) ensureMedia(script host.Script) {
	for _, ref := range script.Assets {
		switch ref.Kind {
		case host.AssetFont:
			if d.media.hasFont(ref.ID) {
				continue
			}
			font, ok := d.assets.LoadFont(host.NewIDFromName(ref.ID))
			if !ok {
				continue
			}
			d.sendCommand(protocol.PutFont{Name: []byte(ref.ID), Data: font.Data})
			d.media.addFont(ref.ID)

		case host.AssetImage:
			if d.media.hasImage(ref.ID) {
				continue
			}
			img, ok := d.assets.LoadImage(host.NewIDFromName(ref.ID))
			if !ok {
				continue
			}
			d.sendCommand(protocol.PutImage{
				ID:     []byte(ref.ID),
				Format: protocol.ImageFormatFromName(string(img.Format)),
				Width:  img.Width,
				Height: img.Height,
				Data:   img.Data,
			})
			d.media.addImage(ref.ID)

		case host.AssetStream:
			if d.media.hasStream(ref.ID) {
				continue
			}
			if !d.assets.HasStream(host.NewIDFromName(ref.ID)) {
				continue
			}
			d.media.addStream(ref.ID)
		}
	}
}
