package driver

// mediaCache tracks which fonts, images, and streams have already been
// pushed to the renderer on the current connection. It is wiped on
// reconnect and on OnResetScene.
type mediaCache struct {
	fonts   map[string]struct{}
	images  map[string]struct{}
	streams map[string]struct{}
}

func newMediaCache() mediaCache {
	return mediaCache{
		fonts:   make(map[string]struct{}),
		images:  make(map[string]struct{}),
		streams: make(map[string]struct{}),
	}
}

func (m *mediaCache) reset() {
	m.fonts = make(map[string]struct{})
	m.images = make(map[string]struct{})
	m.streams = make(map[string]struct{})
}

func (m *mediaCache) hasFont(id string) bool   { _, ok := m.fonts[id]; return ok }
func (m *mediaCache) hasImage(id string) bool  { _, ok := m.images[id]; return ok }
func (m *mediaCache) hasStream(id string) bool { _, ok := m.streams[id]; return ok }

func (m *mediaCache) addFont(id string)   { m.fonts[id] = struct{}{} }
func (m *mediaCache) addImage(id string)  { m.images[id] = struct{}{} }
func (m *mediaCache) addStream(id string) { m.streams[id] = struct{}{} }
