// Package media adapts a blocking stream.Handle to the callback contract of a playback engine.
//
// The engine never sees an *Adapter. It receives an opaque Handle issued by a Table
// and a Callbacks set, and every invocation is routed back through the table. Once an
// adapter closes, its Handle is retired and can never resolve to an adapter again.
package media

import "errors"

// Status codes returned by Open and Seek across the engine boundary.
const (
	StatusOK              = 0
	StatusError           = -1
	StatusSeekUnsupported = -2
)

// ErrUnknownHandle reports a callback carrying a Handle the table never issued.
var ErrUnknownHandle = errors.New("media: callback for unknown handle")

// Handle is the opaque token an engine passes back on every callback. Zero is never issued.
type Handle uint64

// Callbacks is the four-entry contract an engine drives. Each entry takes and returns primitive values only.
type Callbacks struct {
	Open  func(h Handle) int
	Read  func(h Handle, buf []byte, length int) int
	Seek  func(h Handle, offset uint64) int
	Close func(h Handle)
}
