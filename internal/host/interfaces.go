package host

// Scene is the subset of the scene-graph runtime the driver engine
// enumerates during a full re-sync: every script id currently live in the
// viewport, and a lookup from id to its current Script value.
type Scene interface {
	// LiveScriptIDs returns every script id currently part of the scene.
	LiveScriptIDs() []ID
	// Script returns the current value of the script with the given id.
	// ok is false if no such script exists (e.g. deleted between
	// enumeration and fetch).
	Script(id ID) (s Script, ok bool)
}

// Font is an opaque font asset blob; its internal format is not
// interpreted by the driver engine.
type Font struct {
	Data []byte
}

// Image is an opaque image asset blob tagged with its pixel format and
// dimensions.
type Image struct {
	Format        ImageFormatName
	Width, Height uint32
	Data          []byte
}

// ImageFormatName is the host-side symbolic name for an image's pixel
// layout; the codec maps it onto the wire's ImageFormat enum.
type ImageFormatName string

// AssetStore loads font, image, and stream assets by id. A failed or
// missing lookup returns ok=false; the driver engine treats that as
// AssetLoadFailure and silently skips it (the asset stays out of the
// media cache and is retried on the next reference).
type AssetStore interface {
	LoadFont(id ID) (Font, bool)
	LoadImage(id ID) (Image, bool)
	// HasStream reports whether a streamed asset id is currently available.
	// Streams have no byte payload to push — the driver only needs to know
	// whether to mark the stream id as synced.
	HasStream(id ID) bool
}
