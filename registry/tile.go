package registry

import (
	"github.com/mosaic-cli/mosaic/grid"
	"github.com/mosaic-cli/mosaic/media"
	"github.com/mosaic-cli/mosaic/stream"
)

// Tile is one on-screen stream slot.
type Tile struct {
	Descriptor stream.Descriptor
	Position   grid.Position

	// IndividuallyMuted is only ever set through Registry.SetTileMute.
	IndividuallyMuted bool
	// AudioMuted is the state last applied to the engine.
	AudioMuted bool

	adapter *media.Adapter
}

// Handle returns the opaque handle the engine knows this tile by.
func (t *Tile) Handle() media.Handle {
	return t.adapter.Handle()
}

// Closed reports whether the tile's adapter has been closed, either by the
// registry or by the engine tearing playback down on its own.
func (t *Tile) Closed() bool {
	return t.adapter.Closed()
}

func (t *Tile) String() string {
	return t.Descriptor.String() + " @ " + t.Position.String()
}
