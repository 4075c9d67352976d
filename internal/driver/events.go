package driver

import (
	"github.com/scenic-remote/driver/internal/host"
	"github.com/scenic-remote/driver/internal/protocol"
)

// handleEvent dispatches one decoded renderer event. It runs on the
// actor goroutine, so it may freely read and mutate driver state.
func (d *Driver) handleEvent(evt protocol.Event) {
	if evt.Unknown.RawType != 0 {
		// Decoded as Unknown (unrecognized code or malformed payload).
		d.logger.Debug("driver: unrecognized event", "type", evt.Unknown.RawType, "len", len(evt.Unknown.Payload))
		return
	}
	switch evt.Type {
	case protocol.EvtReady:
		d.onReady()
	case protocol.EvtReshape:
		d.onReshape(evt.Reshape)
	case protocol.EvtStats:
		// Renderer-reported byte count; informational only, logged at
		// debug so it doesn't drown out connection-level events.
		d.logger.Debug("driver: renderer stats", "bytes_received", evt.Stats.BytesReceived)
	case protocol.EvtTouch:
		d.input.CursorPos(evt.Touch.X, evt.Touch.Y)
		switch evt.Touch.Action {
		case protocol.TouchDown:
			d.input.CursorButton(host.ButtonLeft, true, nil, evt.Touch.X, evt.Touch.Y)
		case protocol.TouchUp:
			d.input.CursorButton(host.ButtonLeft, false, nil, evt.Touch.X, evt.Touch.Y)
		}
	case protocol.EvtKey:
		d.input.Key(evt.Key.Key, evt.Key.Scancode, host.DecodeKeyAction(evt.Key.Action), host.DecodeMods(evt.Key.Mods))
	case protocol.EvtCodepoint:
		d.input.Codepoint(evt.Codepoint.Codepoint, host.DecodeMods(evt.Codepoint.Mods))
	case protocol.EvtCursorPos:
		d.input.CursorPos(evt.CursorPos.X, evt.CursorPos.Y)
	case protocol.EvtMouseButton:
		d.input.CursorPos(evt.MouseButton.X, evt.MouseButton.Y)
		pressed := evt.MouseButton.Action != 0
		d.input.CursorButton(host.DecodeButton(evt.MouseButton.Button), pressed, host.DecodeMods(evt.MouseButton.Mods), evt.MouseButton.X, evt.MouseButton.Y)
	case protocol.EvtScroll:
		d.input.Scroll(evt.Scroll.XOff, evt.Scroll.YOff, evt.Scroll.X, evt.Scroll.Y)
	case protocol.EvtCursorEnter:
		d.logger.Debug("driver: cursor enter/leave", "entered", evt.CursorEnter.Entered != 0)
	case protocol.EvtLogInfo:
		d.logger.Info("renderer", "message", evt.Log.Message)
	case protocol.EvtLogWarn:
		d.logger.Warn("renderer", "message", evt.Log.Message)
	case protocol.EvtLogError:
		d.logger.Error("renderer", "message", evt.Log.Message)
	default:
		d.logger.Debug("driver: unrecognized event", "type", evt.Unknown.RawType, "len", len(evt.Unknown.Payload))
	}
}

// onReady runs the full re-sync protocol: wipe the media cache, send
// Reset, push every live script (with its asset preamble), and issue one
// terminal Render. It runs on every Ready event the renderer sends.
func (d *Driver) onReady() {
	d.state = stateSynced
	d.media.reset()

	d.sendCommand(protocol.Reset{})

	ids := d.scene.LiveScriptIDs()
	for _, id := range ids {
		script, ok := d.scene.Script(id)
		if !ok {
			continue
		}
		d.ensureMedia(script)

		bytes, err := script.Marshal()
		if err != nil {
			d.logger.Warn("driver: script serialization failed during resync", "id", id.String(), "error", err)
			continue
		}
		d.sendCommand(protocol.PutScript{ID: id.Bytes(), Script: bytes})
	}

	d.sendCommand(protocol.Render{})
	d.logger.Info("driver: resync complete", "scripts", len(ids))
}

// onReshape recomputes the global transform for the renderer's reported
// device size and forwards the raw size to the host, then asks for a
// redraw under the new transform.
func (d *Driver) onReshape(r protocol.Reshape) {
	d.input.Reshape(r.Width, r.Height)

	tx := globalTx(r.Width, r.Height, d.viewportW, d.viewportH)
	d.sendCommand(tx)
	d.sendCommand(protocol.Render{})
}
