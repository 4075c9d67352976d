// Package hostfake provides in-memory implementations of host.Scene,
// host.AssetStore, and host.InputSink for driver tests and the CLI's
// demo mode, where no real scene-graph framework is embedded.
package hostfake

import (
	"sync"

	"github.com/scenic-remote/driver/internal/host"
)

// Scene is a mutable, in-memory host.Scene. Tests populate it directly;
// the driver only ever reads it through the host.Scene interface.
type Scene struct {
	mu      sync.Mutex
	scripts map[string]host.Script
	order   []string
}

func NewScene() *Scene {
	return &Scene{scripts: make(map[string]host.Script)}
}

func (s *Scene) Put(id string, script host.Script) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.scripts[id]; !exists {
		s.order = append(s.order, id)
	}
	s.scripts[id] = script
}

func (s *Scene) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scripts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Scene) LiveScriptIDs() []host.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]host.ID, 0, len(s.order))
	for _, id := range s.order {
		ids = append(ids, host.NewIDFromName(id))
	}
	return ids
}

func (s *Scene) Script(id host.ID) (host.Script, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	script, ok := s.scripts[id.String()]
	return script, ok
}

// AssetStore is an in-memory host.AssetStore backed by maps the test or
// demo sets up ahead of time.
type AssetStore struct {
	mu      sync.Mutex
	fonts   map[string]host.Font
	images  map[string]host.Image
	streams map[string]bool
}

func NewAssetStore() *AssetStore {
	return &AssetStore{
		fonts:   make(map[string]host.Font),
		images:  make(map[string]host.Image),
		streams: make(map[string]bool),
	}
}

func (a *AssetStore) PutFont(id string, font host.Font) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fonts[id] = font
}

func (a *AssetStore) PutImage(id string, img host.Image) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.images[id] = img
}

func (a *AssetStore) PutStream(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.streams[id] = true
}

func (a *AssetStore) LoadFont(id host.ID) (host.Font, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.fonts[id.String()]
	return f, ok
}

func (a *AssetStore) LoadImage(id host.ID) (host.Image, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	img, ok := a.images[id.String()]
	return img, ok
}

func (a *AssetStore) HasStream(id host.ID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.streams[id.String()]
}

// InputCall records one delivered InputSink call, tagged by kind, for
// tests to assert against in order.
type InputCall struct {
	Kind string
	Args []interface{}
}

// InputSink is an in-memory host.InputSink that records every call it
// receives instead of acting on it.
type InputSink struct {
	mu    sync.Mutex
	Calls []InputCall
}

func NewInputSink() *InputSink {
	return &InputSink{}
}

func (s *InputSink) record(kind string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, InputCall{Kind: kind, Args: args})
}

func (s *InputSink) Reshape(width, height uint32) {
	s.record("reshape", width, height)
}

func (s *InputSink) CursorButton(button host.ButtonCode, pressed bool, mods []host.Modifier, x, y float32) {
	s.record("cursor_button", button, pressed, mods, x, y)
}

func (s *InputSink) CursorPos(x, y float32) {
	s.record("cursor_pos", x, y)
}

func (s *InputSink) Key(key, scancode uint32, action host.KeyAction, mods []host.Modifier) {
	s.record("key", key, scancode, action, mods)
}

func (s *InputSink) Codepoint(codepoint uint32, mods []host.Modifier) {
	s.record("codepoint", codepoint, mods)
}

func (s *InputSink) Scroll(xOff, yOff, x, y float32) {
	s.record("scroll", xOff, yOff, x, y)
}

// Snapshot returns a copy of the calls recorded so far.
func (s *InputSink) Snapshot() []InputCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]InputCall, len(s.Calls))
	copy(out, s.Calls)
	return out
}
