package driver

import (
	"context"
	"net"
	"testing"
	"time"

	"log/slog"
	"os"

	"github.com/scenic-remote/driver/internal/config"
	"github.com/scenic-remote/driver/internal/host"
	"github.com/scenic-remote/driver/internal/hostfake"
	"github.com/scenic-remote/driver/internal/protocol"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// renderer is a bare TCP listener standing in for the renderer side of
// the wire, letting tests drive the driver's TCP client transport
// end to end instead of faking the transport layer.
type renderer struct {
	ln   net.Listener
	conn net.Conn
}

func newRenderer(t *testing.T) *renderer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return &renderer{ln: ln}
}

func (r *renderer) accept(t *testing.T) {
	t.Helper()
	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := r.ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()
	select {
	case r.conn = <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("driver never connected")
	}
}

func (r *renderer) addr() *net.TCPAddr {
	return r.ln.Addr().(*net.TCPAddr)
}

func (r *renderer) send(t *testing.T, typ uint8, payload []byte) {
	t.Helper()
	if _, err := r.conn.Write(protocol.EncodeFrame(typ, payload)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// readFrames reads from conn until it has decoded at least want frames or
// the deadline passes.
func (r *renderer) readFrames(t *testing.T, want int) []protocol.Header {
	t.Helper()
	var acc protocol.Accumulator
	var headers []protocol.Header
	buf := make([]byte, 4096)
	r.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for len(headers) < want {
		n, err := r.conn.Read(buf)
		if err != nil {
			t.Fatalf("read: %v (have %d of %d frames)", err, len(headers), want)
		}
		frames, ferr := acc.Feed(buf[:n])
		if ferr != nil {
			t.Fatalf("accumulator: %v", ferr)
		}
		for _, f := range frames {
			hdr, _, _ := protocol.DecodeHeader(f)
			headers = append(headers, hdr)
		}
	}
	return headers
}

func newTestDriver(t *testing.T, r *renderer, scene host.Scene, assets host.AssetStore, input host.InputSink) *Driver {
	t.Helper()
	cfg := config.DriverConfig{
		Transport:         config.TransportTCP,
		Host:              "127.0.0.1",
		Port:              r.addr().Port,
		ReconnectInterval: config.Duration(50 * time.Millisecond),
		Viewport:          config.ViewportConfig{Width: 1080, Height: 1920},
	}
	d := New(cfg, scene, assets, input, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	t.Cleanup(d.Stop)
	d.Start(ctx)
	return d
}

func TestReadyTriggersFullResyncInOrder(t *testing.T) {
	r := newRenderer(t)
	defer r.ln.Close()

	scene := hostfake.NewScene()
	scene.Put("node1", host.Script{
		Primitives: []host.Primitive{{Op: "rect"}},
		Assets:     []host.AssetRef{{Kind: host.AssetFont, ID: "sans"}},
	})
	assets := hostfake.NewAssetStore()
	assets.PutFont("sans", host.Font{Data: []byte("font-bytes")})
	input := hostfake.NewInputSink()

	newTestDriver(t, r, scene, assets, input)
	r.accept(t)

	r.send(t, protocol.EvtReady, nil)

	// Expect: Reset, PutFont(sans), PutScript(node1), Render.
	headers := r.readFrames(t, 4)
	want := []uint8{protocol.CmdReset, protocol.CmdPutFont, protocol.CmdPutScript, protocol.CmdRender}
	for i, w := range want {
		if headers[i].Type != w {
			t.Errorf("frame %d type = 0x%02x, want 0x%02x", i, headers[i].Type, w)
		}
	}
}

func TestReshapeEmitsGlobalTxThenRender(t *testing.T) {
	r := newRenderer(t)
	defer r.ln.Close()

	scene := hostfake.NewScene()
	assets := hostfake.NewAssetStore()
	input := hostfake.NewInputSink()

	newTestDriver(t, r, scene, assets, input)
	r.accept(t)

	payload := make([]byte, 8)
	putUint32Test(payload, 0, 2160)
	putUint32Test(payload, 4, 3840)
	r.send(t, protocol.EvtReshape, payload)

	headers := r.readFrames(t, 2)
	if headers[0].Type != protocol.CmdGlobalTx {
		t.Errorf("frame 0 type = 0x%02x, want GlobalTx", headers[0].Type)
	}
	if headers[1].Type != protocol.CmdRender {
		t.Errorf("frame 1 type = 0x%02x, want Render", headers[1].Type)
	}

	calls := input.Snapshot()
	if len(calls) != 1 || calls[0].Kind != "reshape" {
		t.Fatalf("input calls = %+v, want one reshape call", calls)
	}
}

func TestGlobalTxFormulaLetterboxesNarrowerAxis(t *testing.T) {
	// Design 1080x1920 into a 2160x3840 device: both axes scale by 2,
	// no letterbox offset.
	tx := globalTx(2160, 3840, 1080, 1920)
	if tx.A != 2 || tx.D != 2 {
		t.Fatalf("scale = %v/%v, want 2/2", tx.A, tx.D)
	}
	if tx.E != 0 || tx.F != 0 {
		t.Fatalf("offset = %v/%v, want 0/0", tx.E, tx.F)
	}

	// Design 1080x1920 into a 2160x2160 device: height is the binding
	// axis (scale 2160/1920), width gets letterboxed.
	tx = globalTx(2160, 2160, 1080, 1920)
	wantScale := float32(2160) / float32(1920)
	if tx.A != wantScale || tx.D != wantScale {
		t.Fatalf("scale = %v/%v, want %v", tx.A, tx.D, wantScale)
	}
	if tx.F != 0 {
		t.Fatalf("F = %v, want 0 (height is the binding axis)", tx.F)
	}
	wantTx := (float32(2160) - float32(1080)*wantScale) / 2
	if tx.E != wantTx {
		t.Fatalf("E = %v, want %v", tx.E, wantTx)
	}
}

func TestOnResetSceneClearsMediaCache(t *testing.T) {
	r := newRenderer(t)
	defer r.ln.Close()

	scene := hostfake.NewScene()
	assets := hostfake.NewAssetStore()
	input := hostfake.NewInputSink()

	d := newTestDriver(t, r, scene, assets, input)
	r.accept(t)

	d.media.addFont("sans")
	d.OnResetScene()

	headers := r.readFrames(t, 1)
	if headers[0].Type != protocol.CmdReset {
		t.Fatalf("type = 0x%02x, want Reset", headers[0].Type)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if !d.media.hasFont("sans") {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("media cache was not cleared by OnResetScene")
}

func TestCommandsDroppedSilentlyWhenDisconnected(t *testing.T) {
	scene := hostfake.NewScene()
	assets := hostfake.NewAssetStore()
	input := hostfake.NewInputSink()

	cfg := config.DriverConfig{
		Transport:         config.TransportTCP,
		Host:              "127.0.0.1",
		Port:              1, // nothing listens here; connect always fails
		ReconnectInterval: config.Duration(50 * time.Millisecond),
		Viewport:          config.ViewportConfig{Width: 1080, Height: 1920},
	}
	d := New(cfg, scene, assets, input, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	// Give the connect attempt time to fail; then exercise the public
	// API. None of it should panic or block even though nothing is
	// ever connected.
	time.Sleep(100 * time.Millisecond)
	d.OnResetScene()
	d.OnClearColor(host.Color{R: 255, G: 0, B: 0})
	d.OnUpdateScripts(nil)
	d.OnDelScripts(nil)

	stats := d.Stats()
	if stats.Connected {
		t.Fatalf("Stats().Connected = true, want false")
	}
}

func putUint32Test(buf []byte, off int, v uint32) {
	buf[off] = byte(v >> 24)
	buf[off+1] = byte(v >> 16)
	buf[off+2] = byte(v >> 8)
	buf[off+3] = byte(v)
}
